// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/cmd/flags"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty benchmark history in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := NewStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Init(ctx); err != nil {
			return err
		}

		pterm.Success.Printfln("Initialization done! %s is ready to record benchmarks", flags.Store())
		return nil
	},
}
