// SPDX-License-Identifier: Apache-2.0

package history

import (
	"fmt"
	"math"
	"strings"
)

// DefaultAlertThreshold is the ratio above which a benchmark is considered
// to have regressed.
const DefaultAlertThreshold = 2.0

// Comparison is the outcome of comparing one benchmark across two runs.
type Comparison struct {
	Name string
	Unit string
	Prev Measurement
	Curr Measurement

	// Ratio is how many times worse Curr is than Prev: curr/prev for
	// smaller-is-better units, prev/curr otherwise.
	Ratio        float64
	IsRegression bool
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %.2fx (%v -> %v %s)", c.Name, c.Ratio, c.Prev.Value, c.Curr.Value, c.Unit)
}

// AlertThreshold returns the threshold Compare uses for t.
func AlertThreshold(t float64) float64 {
	if t <= 0 {
		return DefaultAlertThreshold
	}
	return t
}

// Compare compares the benchmarks present in both prev and curr, in the
// order they appear in curr. A benchmark is a regression when its ratio
// exceeds threshold; a non-positive threshold means DefaultAlertThreshold.
func Compare(prev, curr Entry, threshold float64) []Comparison {
	threshold = AlertThreshold(threshold)

	var comparisons []Comparison
	for _, c := range curr.Benches {
		p, ok := prev.Bench(c.Name)
		if !ok {
			continue
		}

		bigger := biggerIsBetter(curr.Tool, c.Unit)
		var ratio float64
		if bigger {
			ratio = ratioOf(p.Value, c.Value)
		} else {
			ratio = ratioOf(c.Value, p.Value)
		}

		comparisons = append(comparisons, Comparison{
			Name:         c.Name,
			Unit:         c.Unit,
			Prev:         p,
			Curr:         c,
			Ratio:        ratio,
			IsRegression: ratio > threshold,
		})
	}
	return comparisons
}

// Regressions returns the comparisons flagged as regressions.
func Regressions(cs []Comparison) []Comparison {
	var out []Comparison
	for _, c := range cs {
		if c.IsRegression {
			out = append(out, c)
		}
	}
	return out
}

func ratioOf(num, den float64) float64 {
	switch {
	case den == 0 && num == 0:
		return 1
	case den == 0:
		return math.Inf(1)
	}
	return num / den
}

// biggerIsBetter reports whether larger values are improvements, based on
// the tool and the unit (throughput units such as ops/sec or MB/s).
func biggerIsBetter(tool, unit string) bool {
	switch tool {
	case "customBiggerIsBetter", "benchmarkjs":
		return true
	case "customSmallerIsBetter":
		return false
	}
	u := strings.ToLower(unit)
	return strings.HasSuffix(u, "/s") || strings.HasSuffix(u, "/sec") || strings.HasPrefix(u, "ops/")
}
