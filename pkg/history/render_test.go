// SPDX-License-Identifier: Apache-2.0

package history_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/benchhistory/pkg/history"
)

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob("testdata/*.js")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			raw, err := os.ReadFile(file)
			require.NoError(t, err)

			s, err := history.Parse(raw)
			require.NoError(t, err)

			out, err := history.Render(s)
			require.NoError(t, err)
			assert.Equal(t, string(raw), string(out))
		})
	}
}

func TestRenderKeepsLineSeparatorsRaw(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile("testdata/snapshot-1.js")
	require.NoError(t, err)

	// raw separators, then an escaped backslash followed by the text u2029
	input := strings.Replace(string(raw),
		`"message": ":construction_worker: CI for doc, release, benchmark."`,
		"\"message\": \"CI\u2028for doc\u2029release \\\\u2029 benchmark.\"", 1)
	require.NotEqual(t, string(raw), input)

	s, err := history.Parse([]byte(input))
	require.NoError(t, err)

	out, err := history.Render(s)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestRenderPreservesGroupOrder(t *testing.T) {
	t.Parallel()

	input := `window.BENCHMARK_DATA = {
  "lastUpdate": 20,
  "repoUrl": "https://example.com/repo",
  "entries": {
    "Zeta": [],
    "Alpha <fast> & loose": [
      {
        "commit": {
          "author": {
            "email": "a@example.com",
            "name": "A",
            "username": null
          },
          "committer": {
            "email": "a@example.com",
            "name": "A"
          },
          "distinct": false,
          "id": "abc",
          "message": "fix <T> & co",
          "timestamp": "2020-04-13T00:44:03Z",
          "tree_id": "def",
          "url": "https://example.com/repo/commit/abc"
        },
        "date": 20,
        "tool": "go",
        "benches": [
          {
            "name": "BenchmarkFib10",
            "value": 0.25,
            "range": "",
            "unit": "ns/op",
            "extra": "4000000 times"
          }
        ]
      }
    ],
    "Middle": []
  }
}`

	s, err := history.Parse([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha <fast> & loose", "Middle"}, s.Groups())

	out, err := history.Render(s)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestSerializeFormats(t *testing.T) {
	t.Parallel()

	s, err := history.LoadFile("testdata/snapshot-1.js")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, history.Serialize(&buf, s, history.FormatJSON))
		assert.True(t, strings.HasPrefix(buf.String(), "{\n  \"lastUpdate\": 1586710613204,"))

		reloaded, err := history.Parse(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, s, reloaded)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, history.Serialize(&buf, s, history.FormatYAML))
		assert.Contains(t, buf.String(), "lastUpdate: 1586710613204")
		assert.Contains(t, buf.String(), "Rust Benchmark:")
		assert.Contains(t, buf.String(), "username: PsiACE")
	})

	t.Run("invalid", func(t *testing.T) {
		var buf bytes.Buffer
		err := history.Serialize(&buf, s, history.InvalidFormat)
		assert.ErrorIs(t, err, history.ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]history.Format{
		"js":   history.FormatJS,
		"JSON": history.FormatJSON,
		"yml":  history.FormatYAML,
		"yaml": history.FormatYAML,
	}
	for in, want := range tests {
		got, err := history.ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := history.ParseFormat("toml")
	assert.ErrorIs(t, err, history.ErrUnknownFormat)
}
