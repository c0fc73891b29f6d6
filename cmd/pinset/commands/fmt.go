package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/ui/style"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [manifests...]",
		Short: "Render manifests in canonical form",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetBool("write")

			if len(args) == 0 {
				args = []string{domain.DefaultManifestName}
			}

			// Format files concurrently, then print in argument order.
			results := make([]*app.FormatResult, len(args))
			group, ctx := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				group.Go(func() error {
					result, err := c.app.Format(ctx, path, write)
					if err != nil {
						return err
					}
					results[i] = result
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			for _, result := range results {
				if !write {
					fmt.Fprint(c.out, string(result.Formatted))
					continue
				}
				if result.Changed {
					fmt.Fprintln(c.out, okStyle.Render(style.Check)+" formatted "+result.Path)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("write", "w", false, "Rewrite files in place instead of printing")
	return cmd
}
