// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/history"
)

func renderCmd() *cobra.Command {
	var format, output string

	renderCmd := &cobra.Command{
		Use:     "render",
		Short:   "Write the history as a dashboard file, JSON or YAML",
		Example: "render --format js -o dev/bench/data.js",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := history.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := loadSuite(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" {
				return history.Serialize(cmd.OutOrStdout(), s, f)
			}

			var buf bytes.Buffer
			if err := history.Serialize(&buf, s, f); err != nil {
				return err
			}
			return os.WriteFile(output, buf.Bytes(), 0o644)
		},
	}

	renderCmd.Flags().StringVar(&format, "format", "js", "Output format (js, json or yaml)")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return renderCmd
}
