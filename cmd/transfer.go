// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/store"
)

var importCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Append every run of a dashboard file to the store",
	Example: "import dev/bench/data.js --store sqlite://bench.db",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := NewStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Init(ctx); err != nil {
			return err
		}

		sp, _ := pterm.DefaultSpinner.WithText("Importing " + args[0] + "...").Start()
		n, err := store.Import(ctx, st, args[0])
		if err != nil {
			sp.Fail(err.Error())
			return err
		}

		sp.Success("Imported ", n, " runs")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:     "export <file>",
	Short:   "Write the history held by the store to a dashboard file",
	Example: "export dev/bench/data.js --store sqlite://bench.db",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := NewStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := store.Export(ctx, st, args[0]); err != nil {
			return err
		}

		pterm.Success.Printfln("Exported history to %s", args[0])
		return nil
	},
}
