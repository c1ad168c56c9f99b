// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/history"
)

func compareCmd() *cobra.Command {
	var threshold float64
	var failOnAlert bool

	compareCmd := &cobra.Command{
		Use:   "compare <group>",
		Short: "Compare the last two runs of a group and report regressions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := args[0]

			s, err := loadSuite(cmd.Context())
			if err != nil {
				return err
			}

			runs, err := s.Group(group)
			if err != nil {
				return err
			}
			if len(runs) < 2 {
				return history.NotEnoughEntriesError{Group: group, Want: 2, Got: len(runs)}
			}
			prev, curr := runs[len(runs)-2], runs[len(runs)-1]

			threshold := history.AlertThreshold(threshold)
			comparisons := history.Compare(prev, curr, threshold)

			data := pterm.TableData{{"Benchmark", prev.Commit.ShortID(), curr.Commit.ShortID(), "Ratio", ""}}
			for _, c := range comparisons {
				status := ""
				if c.IsRegression {
					status = "regression"
				}
				data = append(data, []string{
					c.Name,
					fmt.Sprintf("%v %s", c.Prev.Value, c.Unit),
					fmt.Sprintf("%v %s", c.Curr.Value, c.Unit),
					fmt.Sprintf("%.2f", c.Ratio),
					status,
				})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render(); err != nil {
				return err
			}

			regressions := history.Regressions(comparisons)
			if len(regressions) > 0 && failOnAlert {
				return fmt.Errorf("%w: %d above %.2fx", errRegressionsFound, len(regressions), threshold)
			}
			return nil
		},
	}

	compareCmd.Flags().Float64Var(&threshold, "threshold", history.DefaultAlertThreshold, "Ratio above which a benchmark is reported as a regression")
	compareCmd.Flags().BoolVar(&failOnAlert, "fail-on-alert", false, "Exit with an error when a regression is found")

	return compareCmd
}
