// SPDX-License-Identifier: Apache-2.0

package history

import (
	"strings"
)

// NewSuite returns an empty suite for the given repository.
func NewSuite(repoURL string) *Suite {
	return &Suite{
		RepoURL: repoURL,
		Entries: Groups{runs: make(map[string][]Entry)},
	}
}

// Append adds e to the end of group, creating the group if needed, and
// moves LastUpdate forward to e.Date if it is later. Entries older than
// LastUpdate are accepted; use Check to find them.
//
// The suite is left unchanged if e is rejected.
func (s *Suite) Append(group string, e Entry) error {
	if err := validate(group, e); err != nil {
		return err
	}
	s.append(group, e)
	return nil
}

// AppendStrict is like Append but also rejects entries that would be
// reported by Check: an entry dated before the group's last run, or a
// commit that is already recorded in the group.
func (s *Suite) AppendStrict(group string, e Entry) error {
	if err := validate(group, e); err != nil {
		return err
	}

	runs, _ := s.Entries.Get(group)
	for _, r := range runs {
		if r.Commit.ID == e.Commit.ID {
			return &ValidationError{Field: "commit.id", Reason: "is already recorded in group " + group}
		}
	}
	if n := len(runs); n > 0 && e.Date < runs[n-1].Date {
		return &ValidationError{Field: "date", Reason: "is earlier than the previous run"}
	}

	s.append(group, e)
	return nil
}

func (s *Suite) append(group string, e Entry) {
	if e.Benches == nil {
		e.Benches = []Measurement{}
	}
	runs, _ := s.Entries.Get(group)
	// copy so that slices handed out by Get are never written through
	runs = append(runs[:len(runs):len(runs)], e)
	s.Entries.set(group, runs)

	if e.Date > s.LastUpdate {
		s.LastUpdate = e.Date
	}
}

func validate(group string, e Entry) error {
	if strings.TrimSpace(group) == "" {
		return &ValidationError{Field: "group", Reason: "must not be empty"}
	}
	if strings.TrimSpace(e.Commit.ID) == "" {
		return &ValidationError{Field: "commit.id", Reason: "must not be empty"}
	}
	return nil
}

// Groups returns the benchmark group labels in file order.
func (s *Suite) Groups() []string {
	return s.Entries.Labels()
}

// Group returns the runs recorded for a group, oldest first.
func (s *Suite) Group(name string) ([]Entry, error) {
	runs, ok := s.Entries.Get(name)
	if !ok {
		return nil, GroupNotFoundError{Name: name}
	}
	return runs, nil
}

// Latest returns the most recently appended run of a group.
func (s *Suite) Latest(group string) (*Entry, error) {
	runs, err := s.Group(group)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, NotEnoughEntriesError{Group: group, Want: 1}
	}
	e := runs[len(runs)-1]
	return &e, nil
}

// Truncate drops the oldest runs of a group so that at most n remain and
// returns how many were dropped. It is a no-op when n <= 0.
func (s *Suite) Truncate(group string, n int) int {
	runs, ok := s.Entries.Get(group)
	if !ok || n <= 0 || len(runs) <= n {
		return 0
	}
	dropped := len(runs) - n
	s.Entries.set(group, append([]Entry(nil), runs[dropped:]...))
	return dropped
}

// Clone returns a deep enough copy of s that appending to either does not
// affect the other.
func (s *Suite) Clone() *Suite {
	return &Suite{
		LastUpdate: s.LastUpdate,
		RepoURL:    s.RepoURL,
		Entries:    s.Entries.clone(),
	}
}
