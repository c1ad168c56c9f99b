// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/chart"
)

func chartCmd() *cobra.Command {
	var output, title string
	var groups []string

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Generate an HTML page with a line chart per benchmark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSuite(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			opts := []chart.Option{chart.WithGroups(groups...)}
			if title != "" {
				opts = append(opts, chart.WithPageTitle(title))
			}
			if err := chart.Render(f, s, opts...); err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			pterm.Success.Printfln("Charts generated at %s", output)
			return nil
		},
	}

	chartCmd.Flags().StringVarP(&output, "output", "o", "benchmarks.html", "HTML file to write")
	chartCmd.Flags().StringVar(&title, "title", "", "Title of the page")
	chartCmd.Flags().StringSliceVar(&groups, "group", nil, "Only chart these groups")

	return chartCmd
}
