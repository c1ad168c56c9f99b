// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/pkg/server"
)

func serveCmd() *cobra.Command {
	var addr, title string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the history, its chart page and Prometheus metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := loadSuite(ctx)
			if err != nil {
				return err
			}

			opts := []server.Option{server.WithLogger(newLogger())}
			if title != "" {
				opts = append(opts, server.WithPageTitle(title))
			}
			srv, err := server.New(s, opts...)
			if err != nil {
				return err
			}

			return srv.ListenAndServe(ctx, addr)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringVar(&title, "title", "", "Title of the chart page")

	return serveCmd
}
