// SPDX-License-Identifier: Apache-2.0

package history

import (
	"github.com/oapi-codegen/nullable"
)

// Suite is the full benchmark history of a repository: every recorded run
// for every benchmark group.
type Suite struct {
	// LastUpdate is the epoch-ms date of the most recent run appended.
	LastUpdate int64 `json:"lastUpdate"`

	// RepoURL is the canonical URL of the benchmarked repository.
	RepoURL string `json:"repoUrl"`

	// Entries maps a group label to its runs, in the order they were
	// appended.
	Entries Groups `json:"entries"`
}

// Entry is one benchmark run tied to a single commit.
type Entry struct {
	Commit  Commit        `json:"commit"`
	Date    int64         `json:"date"`
	Tool    string        `json:"tool"`
	Benches []Measurement `json:"benches"`
}

// Commit describes the source-control commit a run was recorded for.
type Commit struct {
	Author    Person `json:"author"`
	Committer Person `json:"committer"`
	Distinct  bool   `json:"distinct"`
	ID        string `json:"id"`
	Message   string `json:"message"`
	// Timestamp is kept verbatim as the ISO-8601 string reported by the
	// forge, offset included.
	Timestamp string `json:"timestamp"`
	TreeID    string `json:"tree_id"`
	URL       string `json:"url"`
}

// Person is a commit author or committer.
type Person struct {
	Email string `json:"email"`
	Name  string `json:"name"`

	// Username is absent, null or set depending on whether the forge could
	// map the email to an account.
	Username nullable.Nullable[string] `json:"username,omitempty"`
}

// Measurement is one named timing result within an Entry.
type Measurement struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Range string  `json:"range"`
	Unit  string  `json:"unit"`
	Extra string  `json:"extra,omitempty"`
}

// ShortID returns the first seven characters of the commit id.
func (c Commit) ShortID() string {
	if len(c.ID) <= 7 {
		return c.ID
	}
	return c.ID[:7]
}

// Bench returns the measurement with the given name.
func (e *Entry) Bench(name string) (Measurement, bool) {
	for _, b := range e.Benches {
		if b.Name == name {
			return b, true
		}
	}
	return Measurement{}, false
}

// NewPerson returns a Person, setting the username only when it is
// non-empty.
func NewPerson(name, email, username string) Person {
	p := Person{Name: name, Email: email}
	if username != "" {
		p.Username = nullable.NewNullableWithValue(username)
	}
	return p
}
