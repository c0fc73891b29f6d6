package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(c.out, "pinset version %s (commit %s, built %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
