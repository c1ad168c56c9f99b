// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/perf/benchfmt"

	"github.com/xataio/benchhistory/pkg/history"
)

// Tool names the harness whose output is being read. The name is recorded
// as the tool of the appended run.
type Tool string

const (
	ToolCargo                 Tool = "cargo"
	ToolGo                    Tool = "go"
	ToolCustomSmallerIsBetter Tool = "customSmallerIsBetter"
	ToolCustomBiggerIsBetter  Tool = "customBiggerIsBetter"
)

var (
	ErrNoBenchmarks = errors.New("no benchmark result found")
	ErrUnknownTool  = errors.New("unknown benchmark tool")
)

// Tools lists the supported tools in the order they are documented.
func Tools() []Tool {
	return []Tool{ToolCargo, ToolGo, ToolCustomSmallerIsBetter, ToolCustomBiggerIsBetter}
}

// ParseTool returns the Tool named s.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Extract reads the output of tool from r and returns its measurements in
// the order they appear.
func Extract(tool Tool, r io.Reader) ([]history.Measurement, error) {
	var (
		ms  []history.Measurement
		err error
	)
	switch tool {
	case ToolCargo:
		ms, err = extractCargo(r)
	case ToolGo:
		ms, err = extractGo(r)
	case ToolCustomSmallerIsBetter, ToolCustomBiggerIsBetter:
		ms, err = extractCustom(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
	}
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, ErrNoBenchmarks
	}
	return ms, nil
}

// NewEntry builds the run recorded for commit at time now.
func NewEntry(commit history.Commit, tool Tool, ms []history.Measurement, now time.Time) history.Entry {
	return history.Entry{
		Commit:  commit,
		Date:    now.UnixMilli(),
		Tool:    string(tool),
		Benches: ms,
	}
}

var cargoLine = regexp.MustCompile(`^test (.+) \.\.\. bench:\s+([0-9,.]+) (\S+) \(\+/- ([0-9,.]+)\)$`)

// extractCargo reads libtest bench output:
//
//	test b10_no_logger_active ... bench:          52 ns/iter (+/- 6)
func extractCargo(r io.Reader) ([]history.Measurement, error) {
	var ms []history.Measurement

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		m := cargoLine.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q: %w", line, m[2], err)
		}
		ms = append(ms, history.Measurement{
			Name:  strings.TrimSpace(m[1]),
			Value: value,
			Range: "± " + strings.ReplaceAll(m[4], ",", ""),
			Unit:  m[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ms, nil
}

// extractGo reads the Go benchmark format. The first value of a result is
// recorded under the benchmark name with the iteration count as extra;
// every other value is recorded as "NAME - UNIT".
func extractGo(r io.Reader) ([]history.Measurement, error) {
	var ms []history.Measurement

	br := benchfmt.NewReader(r, "")
	for br.Scan() {
		res, ok := br.Result().(*benchfmt.Result)
		if !ok {
			// configuration lines, unit metadata and malformed lines
			continue
		}

		name := "Benchmark" + string(res.Name)
		for i, v := range res.Values {
			value, unit := v.Value, v.Unit
			if v.OrigUnit != "" {
				value, unit = v.OrigValue, v.OrigUnit
			}

			m := history.Measurement{Name: name, Value: value, Unit: unit}
			if i == 0 {
				m.Extra = fmt.Sprintf("%d times", res.Iters)
			} else {
				m.Name = name + " - " + unit
			}
			ms = append(ms, m)
		}
	}
	if err := br.Err(); err != nil {
		return nil, err
	}
	return ms, nil
}

type customResult struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Range string  `json:"range,omitempty"`
	Extra string  `json:"extra,omitempty"`
}

// extractCustom reads a JSON array of {name, value, unit, range?, extra?}.
func extractCustom(r io.Reader) ([]history.Measurement, error) {
	var results []customResult

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&results); err != nil {
		return nil, fmt.Errorf("invalid custom benchmark output: %w", err)
	}

	ms := make([]history.Measurement, 0, len(results))
	for i, res := range results {
		if res.Name == "" {
			return nil, fmt.Errorf("result %d: name must not be empty", i)
		}
		if res.Unit == "" {
			return nil, fmt.Errorf("result %d (%s): unit must not be empty", i, res.Name)
		}
		ms = append(ms, history.Measurement{
			Name:  res.Name,
			Value: res.Value,
			Range: res.Range,
			Unit:  res.Unit,
			Extra: res.Extra,
		})
	}
	return ms, nil
}
