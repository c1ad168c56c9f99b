// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/benchhistory/cmd/flags"
	"github.com/xataio/benchhistory/pkg/extract"
	"github.com/xataio/benchhistory/pkg/history"
	"github.com/xataio/benchhistory/pkg/store"
)

func appendCmd() *cobra.Command {
	var tool string
	var commitID, commitMessage, commitURL, timestamp, treeID string
	var authorName, authorEmail, authorUsername string
	var date int64
	var strict bool
	var maxItems int

	appendCmd := &cobra.Command{
		Use:     "append <group> <measurements-file>",
		Short:   "Append the results of a benchmark run to a group",
		Example: "append 'Rust Benchmark' output.txt --tool cargo --commit-id $GITHUB_SHA",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			group, file := args[0], args[1]

			t, err := extract.ParseTool(tool)
			if err != nil {
				return err
			}
			if commitID == "" {
				return errNoCommitID
			}

			ms, err := readMeasurements(cmd, t, file)
			if err != nil {
				return err
			}

			now := time.Now()
			if date > 0 {
				now = time.UnixMilli(date)
			}
			if timestamp == "" {
				timestamp = now.Format(time.RFC3339)
			}
			if commitURL == "" && flags.RepoURL() != "" {
				commitURL = strings.TrimSuffix(flags.RepoURL(), "/") + "/commit/" + commitID
			}

			author := history.NewPerson(authorName, authorEmail, authorUsername)
			commit := history.Commit{
				Author:    author,
				Committer: author,
				Distinct:  true,
				ID:        commitID,
				Message:   commitMessage,
				Timestamp: timestamp,
				TreeID:    treeID,
				URL:       commitURL,
			}

			var opts []store.Option
			if strict {
				opts = append(opts, store.WithStrict())
			}
			if maxItems > 0 {
				opts = append(opts, store.WithMaxItems(maxItems))
			}

			st, err := NewStore(ctx, opts...)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Append(ctx, group, extract.NewEntry(commit, t, ms, now)); err != nil {
				return err
			}

			pterm.Success.Printfln("Appended %d benchmarks for %s to %q", len(ms), commit.ShortID(), group)
			return nil
		},
	}

	appendCmd.Flags().StringVar(&tool, "tool", string(extract.ToolCargo), "Benchmark tool that produced the measurements file (cargo, go, customSmallerIsBetter, customBiggerIsBetter)")
	appendCmd.Flags().StringVar(&commitID, "commit-id", os.Getenv("GITHUB_SHA"), "Id of the benchmarked commit")
	appendCmd.Flags().StringVar(&commitMessage, "commit-message", "", "Message of the benchmarked commit")
	appendCmd.Flags().StringVar(&commitURL, "commit-url", "", "URL of the benchmarked commit (defaults to <repo-url>/commit/<commit-id>)")
	appendCmd.Flags().StringVar(&timestamp, "timestamp", "", "Commit timestamp (defaults to the run date in RFC 3339)")
	appendCmd.Flags().StringVar(&treeID, "tree-id", "", "Tree id of the benchmarked commit")
	appendCmd.Flags().StringVar(&authorName, "author-name", "", "Name of the commit author")
	appendCmd.Flags().StringVar(&authorEmail, "author-email", "", "Email of the commit author")
	appendCmd.Flags().StringVar(&authorUsername, "author-username", "", "Username of the commit author")
	appendCmd.Flags().Int64Var(&date, "date", 0, "Date of the run in milliseconds since the epoch (defaults to now)")
	appendCmd.Flags().BoolVar(&strict, "strict", false, "Reject runs older than the previous run or for a commit already recorded")
	appendCmd.Flags().IntVar(&maxItems, "max-items", 0, "Keep at most this many runs in the group (0 keeps all)")

	return appendCmd
}

// readMeasurements extracts the measurements of file, or of stdin when
// file is "-".
func readMeasurements(cmd *cobra.Command, tool extract.Tool, file string) ([]history.Measurement, error) {
	var r io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return extract.Extract(tool, r)
}
