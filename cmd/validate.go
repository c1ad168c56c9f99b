// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/history"
)

var validateCmd = &cobra.Command{
	Use:       "validate <file>",
	Short:     "Validate a dashboard file",
	Example:   "validate dev/bench/data.js",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"file"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := history.LoadFile(args[0])
		if err != nil {
			return err
		}

		runs := 0
		for _, g := range s.Groups() {
			entries, _ := s.Group(g)
			runs += len(entries)
		}

		for _, a := range s.Check() {
			pterm.Warning.Println(a.String())
		}
		pterm.Success.Printfln("%s is valid: %d groups, %d runs", args[0], len(s.Groups()), runs)
		return nil
	},
}
