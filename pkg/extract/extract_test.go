// SPDX-License-Identifier: Apache-2.0

package extract_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/benchhistory/pkg/extract"
	"github.com/xataio/benchhistory/pkg/history"
)

const cargoOutput = `
running 4 tests
test b10_no_logger_active  ... bench:          52 ns/iter (+/- 6)
test b11_no_logger_active_debug ... bench:          51 ns/iter (+/- 2)
test b20_initialize_logger ... bench:      1,234 ns/iter (+/- 1,056)
test b30_relevant_logs     ... bench:       3,870 ns/iter (+/- 120)
test tests::it_works ... ignored

test result: ok. 0 passed; 0 failed; 1 ignored; 4 measured; 0 filtered out
`

const goOutput = `goos: linux
goarch: amd64
pkg: github.com/xataio/benchhistory/pkg/history
cpu: Intel(R) Xeon(R) CPU @ 2.20GHz
BenchmarkRender-8          	   12345	     96512 ns/op	   40960 B/op	     12 allocs/op
BenchmarkParse/snapshot-3-8	    2000	    612000 ns/op
PASS
ok  	github.com/xataio/benchhistory/pkg/history	3.210s
`

func TestExtractCargo(t *testing.T) {
	t.Parallel()

	ms, err := extract.Extract(extract.ToolCargo, strings.NewReader(cargoOutput))
	require.NoError(t, err)

	assert.Equal(t, []history.Measurement{
		{Name: "b10_no_logger_active", Value: 52, Range: "± 6", Unit: "ns/iter"},
		{Name: "b11_no_logger_active_debug", Value: 51, Range: "± 2", Unit: "ns/iter"},
		{Name: "b20_initialize_logger", Value: 1234, Range: "± 1056", Unit: "ns/iter"},
		{Name: "b30_relevant_logs", Value: 3870, Range: "± 120", Unit: "ns/iter"},
	}, ms)
}

func TestExtractGo(t *testing.T) {
	t.Parallel()

	ms, err := extract.Extract(extract.ToolGo, strings.NewReader(goOutput))
	require.NoError(t, err)
	require.Len(t, ms, 4)

	assert.Equal(t, "BenchmarkRender-8", ms[0].Name)
	assert.InDelta(t, 96512, ms[0].Value, 1e-6)
	assert.Equal(t, "ns/op", ms[0].Unit)
	assert.Equal(t, "12345 times", ms[0].Extra)

	assert.Equal(t, "BenchmarkRender-8 - B/op", ms[1].Name)
	assert.InDelta(t, 40960, ms[1].Value, 1e-6)
	assert.Empty(t, ms[1].Extra)

	assert.Equal(t, "BenchmarkRender-8 - allocs/op", ms[2].Name)
	assert.InDelta(t, 12, ms[2].Value, 1e-6)

	assert.Equal(t, "BenchmarkParse/snapshot-3-8", ms[3].Name)
	assert.Equal(t, "2000 times", ms[3].Extra)
}

func TestExtractCustom(t *testing.T) {
	t.Parallel()

	input := `[
		{"name": "throughput", "value": 1520.5, "unit": "req/s", "range": "± 3"},
		{"name": "p99", "value": 12, "unit": "ms", "extra": "warm cache"}
	]`

	for _, tool := range []extract.Tool{extract.ToolCustomBiggerIsBetter, extract.ToolCustomSmallerIsBetter} {
		ms, err := extract.Extract(tool, strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []history.Measurement{
			{Name: "throughput", Value: 1520.5, Range: "± 3", Unit: "req/s"},
			{Name: "p99", Value: 12, Unit: "ms", Extra: "warm cache"},
		}, ms)
	}
}

func TestExtractErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tool    extract.Tool
		input   string
		wantErr error
	}{
		{
			name:    "unknown tool",
			tool:    "pytest",
			input:   "",
			wantErr: extract.ErrUnknownTool,
		},
		{
			name:    "no cargo benchmarks",
			tool:    extract.ToolCargo,
			input:   "running 0 tests\n",
			wantErr: extract.ErrNoBenchmarks,
		},
		{
			name:    "no go benchmarks",
			tool:    extract.ToolGo,
			input:   "PASS\nok  \tpkg\t0.001s\n",
			wantErr: extract.ErrNoBenchmarks,
		},
		{
			name:    "empty custom array",
			tool:    extract.ToolCustomSmallerIsBetter,
			input:   "[]",
			wantErr: extract.ErrNoBenchmarks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract.Extract(tt.tool, strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractCustomRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"name": "x"}`,
		`[{"name": "", "value": 1, "unit": "ms"}]`,
		`[{"name": "x", "value": 1}]`,
		`[{"name": "x", "value": 1, "unit": "ms", "biggerIsBetter": true}]`,
	}
	for _, in := range inputs {
		_, err := extract.Extract(extract.ToolCustomBiggerIsBetter, strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestParseTool(t *testing.T) {
	t.Parallel()

	tool, err := extract.ParseTool("cargo")
	require.NoError(t, err)
	assert.Equal(t, extract.ToolCargo, tool)

	_, err = extract.ParseTool("benchmarkjs")
	assert.ErrorIs(t, err, extract.ErrUnknownTool)
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	commit := history.Commit{ID: "52972b3a77d9d6ff7c4e5eb0ff2adc0b4f5d2a10", Distinct: true}
	ms := []history.Measurement{{Name: "b10_no_logger_active", Value: 52, Range: "± 6", Unit: "ns/iter"}}
	now := time.UnixMilli(1586832474612)

	e := extract.NewEntry(commit, extract.ToolCargo, ms, now)

	assert.Equal(t, int64(1586832474612), e.Date)
	assert.Equal(t, "cargo", e.Tool)
	assert.Equal(t, commit, e.Commit)
	assert.Equal(t, ms, e.Benches)
}
