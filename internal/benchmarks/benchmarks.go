// SPDX-License-Identifier: Apache-2.0

package benchmarks

import (
	"fmt"

	"github.com/xataio/benchhistory/pkg/history"
)

// SyntheticEntry returns the i-th run of a synthetic group. Dates increase
// with i and every run carries the same benchmark names.
func SyntheticEntry(i, benches int) history.Entry {
	author := history.NewPerson("Bench Bot", "bench@example.com", "bench-bot")
	id := fmt.Sprintf("%040x", i+1)

	ms := make([]history.Measurement, benches)
	for b := range ms {
		ms[b] = history.Measurement{
			Name:  fmt.Sprintf("b%02d_synthetic", b),
			Value: float64(50 + (i+b)%7),
			Range: fmt.Sprintf("± %d", 1+b%5),
			Unit:  "ns/iter",
		}
	}

	return history.Entry{
		Commit: history.Commit{
			Author:    author,
			Committer: author,
			Distinct:  true,
			ID:        id,
			Message:   fmt.Sprintf("commit %d", i),
			Timestamp: "2020-04-14T10:44:23+08:00",
			TreeID:    fmt.Sprintf("%040x", 1<<20+i),
			URL:       "https://github.com/xataio/benchhistory/commit/" + id,
		},
		Date:    1586832474612 + int64(i)*60_000,
		Tool:    "cargo",
		Benches: ms,
	}
}

// SyntheticSuite returns a history with the given number of groups, each
// holding runs runs of benches measurements.
func SyntheticSuite(groups, runs, benches int) *history.Suite {
	s := history.NewSuite("https://github.com/xataio/benchhistory")
	for g := 0; g < groups; g++ {
		group := fmt.Sprintf("Group %d", g)
		for i := 0; i < runs; i++ {
			// entries are valid by construction
			_ = s.Append(group, SyntheticEntry(i, benches))
		}
	}
	return s
}
