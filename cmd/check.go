// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var strict bool

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Report runs dated before their predecessor and commits recorded twice in a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSuite(cmd.Context())
			if err != nil {
				return err
			}

			anomalies := s.Check()
			if len(anomalies) == 0 {
				pterm.Success.Println("No anomalies found")
				return nil
			}

			for _, a := range anomalies {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			if strict {
				return fmt.Errorf("%w: %d found", errAnomaliesFound, len(anomalies))
			}
			return nil
		},
	}

	checkCmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when anomalies are found")

	return checkCmd
}
