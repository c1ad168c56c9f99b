// SPDX-License-Identifier: Apache-2.0

package chart_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/benchhistory/pkg/chart"
	"github.com/xataio/benchhistory/pkg/history"
)

func loadSnapshot(t *testing.T) *history.Suite {
	t.Helper()

	s, err := history.LoadFile("../history/testdata/snapshot-3.js")
	require.NoError(t, err)
	return s
}

// TestBuildChartsRegression is a simple regression test
func TestBuildChartsRegression(t *testing.T) {
	t.Parallel()

	page, err := chart.Build(loadSnapshot(t))
	require.NoError(t, err)

	// 1 group * 4 benchmarks
	assert.Len(t, page.Charts, 4)
}

func TestBuildWithExtraGroup(t *testing.T) {
	t.Parallel()

	s := loadSnapshot(t)
	require.NoError(t, s.Append("Go Benchmark", history.Entry{
		Commit:  history.Commit{ID: "7b1e0d3f9c2a4e6b8d0f1a3c5e7092b4d6f8a1c3"},
		Date:    1,
		Tool:    "go",
		Benches: []history.Measurement{{Name: "BenchmarkRender-8", Value: 96512, Unit: "ns/op"}},
	}))

	page, err := chart.Build(s)
	require.NoError(t, err)
	assert.Len(t, page.Charts, 5)

	page, err = chart.Build(s, chart.WithGroups("Go Benchmark"))
	require.NoError(t, err)
	assert.Len(t, page.Charts, 1)

	_, err = chart.Build(s, chart.WithGroups("missing"))
	assert.ErrorAs(t, err, &history.GroupNotFoundError{})
}

func TestRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := chart.Render(&buf, loadSnapshot(t), chart.WithPageTitle("loge benchmarks"))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>loge benchmarks</title>")
	assert.Contains(t, html, "b10_no_logger_active (Rust Benchmark)")
	assert.Contains(t, html, "52972b3")
	assert.Contains(t, html, "ca450b5")
}
