// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/benchhistory/cmd"
)

func TestArgsFromUse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Arg{{Name: "group"}, {Name: "measurements-file"}}, argsFromUse("append <group> <measurements-file>"))
	assert.Equal(t, []Arg{{Name: "group", Optional: true}}, argsFromUse("show [group]"))
	assert.Empty(t, argsFromUse("init"))
}

func TestExtractCommands(t *testing.T) {
	t.Parallel()

	rootCmd, err := cmd.Prepare()
	require.NoError(t, err)

	commands := extractCommands(rootCmd.Commands())

	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{
		"append", "chart", "check", "compare", "export", "import",
		"init", "latest", "render", "serve", "show", "validate",
	}, names)

	flags := extractFlags(rootCmd.PersistentFlags())
	require.NotEmpty(t, flags)
	var store Flag
	for _, f := range flags {
		if f.Name == "store" {
			store = f
		}
	}
	assert.Equal(t, "dev/bench/data.js", store.Default)
}
