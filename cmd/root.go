// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/benchhistory/cmd/flags"
	"github.com/xataio/benchhistory/pkg/history"
	"github.com/xataio/benchhistory/pkg/store"
)

// Version is the benchhistory version
var Version = "development"

func init() {
	viper.SetEnvPrefix("BENCHHISTORY")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("store", flags.DefaultStore, "Dashboard file, sqlite:// location or Postgres URL holding the history")
	rootCmd.PersistentFlags().String("repo-url", "", "Repository URL recorded in a new history")
	rootCmd.PersistentFlags().String("schema", store.DefaultPostgresSchema, "Postgres schema holding the history tables")
	rootCmd.PersistentFlags().Int("lock-timeout", 500, "Postgres lock timeout in milliseconds for each statement")
	rootCmd.PersistentFlags().Int("busy-timeout", store.DefaultBusyTimeoutMs, "SQLite busy timeout in milliseconds")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.BindPFlag("STORE", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("REPO_URL", rootCmd.PersistentFlags().Lookup("repo-url"))
	viper.BindPFlag("SCHEMA", rootCmd.PersistentFlags().Lookup("schema"))
	viper.BindPFlag("LOCK_TIMEOUT", rootCmd.PersistentFlags().Lookup("lock-timeout"))
	viper.BindPFlag("BUSY_TIMEOUT", rootCmd.PersistentFlags().Lookup("busy-timeout"))
	viper.BindPFlag("VERBOSE", rootCmd.PersistentFlags().Lookup("verbose"))
}

var rootCmd = &cobra.Command{
	Use:          "benchhistory",
	Short:        "Record benchmark results per commit and publish them for the benchmark dashboard",
	SilenceUsage: true,
	Version:      Version,
}

// NewStore opens the store configured by the global flags
func NewStore(ctx context.Context, opts ...store.Option) (store.Store, error) {
	opts = append([]store.Option{
		store.WithRepoURL(flags.RepoURL()),
		store.WithSchema(flags.Schema()),
		store.WithLockTimeoutMs(flags.LockTimeout()),
		store.WithBusyTimeoutMs(flags.BusyTimeout()),
		store.WithLogger(newLogger()),
	}, opts...)

	return store.Open(ctx, flags.Store(), opts...)
}

// loadSuite reads the history from the configured store
func loadSuite(ctx context.Context) (*history.Suite, error) {
	st, err := NewStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return st.Load(ctx)
}

func newLogger() history.Logger {
	if flags.Verbose() {
		return history.NewLoggerWithLevel(pterm.LogLevelDebug)
	}
	return history.NewLoggerWithLevel(pterm.LogLevelInfo)
}

// Prepare loads the .env file of the working directory, if any, and
// registers every subcommand.
func Prepare() (*cobra.Command, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(appendCmd())
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	return rootCmd, nil
}

// Execute executes the root command.
func Execute() error {
	cmd, err := Prepare()
	if err != nil {
		return err
	}
	return cmd.Execute()
}
