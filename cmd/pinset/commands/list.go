package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [manifests...]",
		Short: "List the combined requirement set in installer order",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			records, err := c.app.List(cmd.Context(), args)
			if err != nil {
				return err
			}

			switch format {
			case "text":
				for i := range records {
					rec := &records[i]
					fmt.Fprintf(c.out, "%s==%s\t%s\n", rec.Name, rec.Version, dimStyle.Render(rec.Ref()))
				}
				return nil
			case "json":
				type recordView struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Source  string `json:"source"`
					Line    int    `json:"line"`
				}
				views := make([]recordView, 0, len(records))
				for i := range records {
					rec := &records[i]
					views = append(views, recordView{
						Name:    rec.Name.String(),
						Version: rec.Version.String(),
						Source:  rec.Source.String(),
						Line:    rec.Line,
					})
				}
				encoder := json.NewEncoder(c.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(views)
			default:
				return zerr.With(zerr.New("unknown list format"), "format", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format (text or json)")
	return cmd
}
