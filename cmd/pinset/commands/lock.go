package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/ui/style"
)

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [manifests...]",
		Short: "Write a lockfile capturing the pinned set and its digest",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			check, _ := cmd.Flags().GetBool("check")

			if check {
				if err := c.app.Verify(cmd.Context(), args, output); err != nil {
					fmt.Fprintln(c.out, badStyle.Render(style.Cross)+" "+renderViolation(err))
					return err
				}
				fmt.Fprintln(c.out, okStyle.Render(style.Check)+" lockfile is up to date")
				return nil
			}

			lockfile, err := c.app.Lock(cmd.Context(), args, output)
			if err != nil {
				fmt.Fprintln(c.out, badStyle.Render(style.Cross)+" "+renderViolation(err))
				return err
			}

			fmt.Fprintf(c.out, "%s locked %d packages to %s %s\n",
				okStyle.Render(style.Check), len(lockfile.Packages), output,
				dimStyle.Render("(digest "+lockfile.Digest+")"))
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", domain.LockFileName, "Lockfile path")
	cmd.Flags().Bool("check", false, "Verify the lockfile instead of writing it")
	return cmd
}
