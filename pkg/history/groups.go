// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Groups is an ordered mapping from group label to runs. The order of the
// labels is the order in which they appear in the persisted file, so that
// rewriting a file does not reshuffle it.
type Groups struct {
	order []string
	runs  map[string][]Entry
}

// Labels returns the group labels in order.
func (g *Groups) Labels() []string {
	return slices.Clone(g.order)
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// Get returns the runs of a group. The returned slice must not be modified.
func (g *Groups) Get(label string) ([]Entry, bool) {
	runs, ok := g.runs[label]
	return runs, ok
}

func (g *Groups) set(label string, runs []Entry) {
	if g.runs == nil {
		g.runs = make(map[string][]Entry)
	}
	if _, ok := g.runs[label]; !ok {
		g.order = append(g.order, label)
	}
	g.runs[label] = runs
}

func (g *Groups) clone() Groups {
	c := Groups{
		order: slices.Clone(g.order),
		runs:  make(map[string][]Entry, len(g.runs)),
	}
	for k, v := range g.runs {
		c.runs[k] = slices.Clone(v)
	}
	return c
}

func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		runs := g.runs[label]
		if runs == nil {
			runs = []Entry{}
		}
		val, err := marshalNoEscape(runs)
		if err != nil {
			return nil, fmt.Errorf("encoding group %q: %w", label, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *Groups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entries: expected object, got %v", tok)
	}

	*g = Groups{runs: make(map[string][]Entry)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("entries: expected group label, got %v", tok)
		}

		var runs []Entry
		if err := dec.Decode(&runs); err != nil {
			return fmt.Errorf("group %q: %w", label, err)
		}
		if runs == nil {
			runs = []Entry{}
		}
		// a repeated label replaces the earlier value but keeps its position
		g.set(label, runs)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// marshalNoEscape encodes v as JSON without escaping <, > and &, which the
// dashboard's writer leaves as is.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
