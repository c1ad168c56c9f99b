// SPDX-License-Identifier: Apache-2.0

package history

import "fmt"

type AnomalyKind string

const (
	// AnomalyOutOfOrder marks a run dated before the run preceding it.
	AnomalyOutOfOrder AnomalyKind = "out_of_order"
	// AnomalyDuplicateCommit marks a run for a commit already recorded
	// earlier in the same group.
	AnomalyDuplicateCommit AnomalyKind = "duplicate_commit"
)

// Anomaly is a property of the history that Append tolerates but that a
// stricter reader may want to know about.
type Anomaly struct {
	Kind     AnomalyKind
	Group    string
	Index    int
	CommitID string
	Detail   string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s[%d] %s: %s", a.Group, a.Index, a.Kind, a.Detail)
}

// Check walks every group and reports out-of-order dates and re-recorded
// commits.
func (s *Suite) Check() []Anomaly {
	var anomalies []Anomaly

	for _, group := range s.Entries.Labels() {
		runs, _ := s.Entries.Get(group)
		seen := make(map[string]int, len(runs))

		for i, e := range runs {
			if i > 0 && e.Date < runs[i-1].Date {
				anomalies = append(anomalies, Anomaly{
					Kind:     AnomalyOutOfOrder,
					Group:    group,
					Index:    i,
					CommitID: e.Commit.ID,
					Detail:   fmt.Sprintf("date %d is before previous date %d", e.Date, runs[i-1].Date),
				})
			}

			if first, ok := seen[e.Commit.ID]; ok {
				anomalies = append(anomalies, Anomaly{
					Kind:     AnomalyDuplicateCommit,
					Group:    group,
					Index:    i,
					CommitID: e.Commit.ID,
					Detail:   fmt.Sprintf("commit %s already recorded at index %d", e.Commit.ShortID(), first),
				})
				continue
			}
			seen[e.Commit.ID] = i
		}
	}

	return anomalies
}
