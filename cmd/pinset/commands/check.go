package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pinset/internal/app"
	"go.trai.ch/pinset/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifests...]",
		Short: "Validate that every requirement carries an exact pin",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if jsonOut {
				// Keep logs machine-readable alongside the JSON report.
				if jl, ok := c.logger.(interface{ SetJSON(enable bool) }); ok {
					jl.SetJSON(true)
				}
			}

			if watch {
				err := c.app.Watch(cmd.Context(), args, func(report *app.CheckReport, err error) {
					c.renderCheck(report, jsonOut)
					if report == nil && err != nil {
						fmt.Fprintln(c.out, badStyle.Render(style.Cross)+" "+err.Error())
					}
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			report, err := c.app.Check(cmd.Context(), args)
			c.renderCheck(report, jsonOut)
			return err
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Re-check whenever a manifest changes")
	cmd.Flags().Bool("json", false, "Emit the report as JSON")
	return cmd
}

type checkReportView struct {
	OK         bool     `json:"ok"`
	Manifests  int      `json:"manifests"`
	Includes   int      `json:"includes"`
	Packages   int      `json:"packages"`
	Violations []string `json:"violations"`
	Duplicates []string `json:"duplicates,omitempty"`
}

func (c *CLI) renderCheck(report *app.CheckReport, jsonOut bool) {
	if report == nil {
		return
	}

	if !jsonOut {
		c.renderReport(report)
		return
	}

	view := checkReportView{
		OK:         report.OK(),
		Manifests:  report.Manifests,
		Includes:   report.Includes,
		Packages:   len(report.Records),
		Violations: make([]string, 0, len(report.Violations)),
	}
	for _, violation := range report.Violations {
		view.Violations = append(view.Violations, renderViolation(violation))
	}
	for i := range report.Duplicates {
		dup := &report.Duplicates[i]
		view.Duplicates = append(view.Duplicates,
			fmt.Sprintf("%s==%s at %s", dup.Name, dup.Version, dup.Ref()))
	}

	encoder := json.NewEncoder(c.out)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(view)
}
