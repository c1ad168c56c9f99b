// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/history"
)

var showCmd = &cobra.Command{
	Use:   "show [group]",
	Short: "Show the groups of the history, or the runs of one group",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSuite(cmd.Context())
		if err != nil {
			return err
		}

		var data pterm.TableData
		if len(args) == 0 {
			data = groupsTable(s)
		} else {
			data, err = runsTable(s, args[0])
			if err != nil {
				return err
			}
		}

		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func groupsTable(s *history.Suite) pterm.TableData {
	data := pterm.TableData{{"Group", "Runs", "Latest commit", "Latest run"}}
	for _, g := range s.Groups() {
		runs, _ := s.Group(g)
		row := []string{g, strconv.Itoa(len(runs)), "", ""}
		if n := len(runs); n > 0 {
			row[2] = runs[n-1].Commit.ShortID()
			row[3] = formatDate(runs[n-1].Date)
		}
		data = append(data, row)
	}
	return data
}

func runsTable(s *history.Suite, group string) (pterm.TableData, error) {
	runs, err := s.Group(group)
	if err != nil {
		return nil, err
	}

	data := pterm.TableData{{"Commit", "Date", "Benchmark", "Value", "Range", "Unit"}}
	for _, e := range runs {
		for _, b := range e.Benches {
			data = append(data, []string{
				e.Commit.ShortID(),
				formatDate(e.Date),
				b.Name,
				fmt.Sprint(b.Value),
				b.Range,
				b.Unit,
			})
		}
	}
	return data, nil
}

func formatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
