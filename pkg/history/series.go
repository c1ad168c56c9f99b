// SPDX-License-Identifier: Apache-2.0

package history

// Point is one value of a benchmark at one run.
type Point struct {
	CommitID string
	Date     int64
	Value    float64
	Range    string
}

// Series is the history of a single benchmark within a group.
type Series struct {
	Name   string
	Unit   string
	Points []Point
}

// Series pivots the runs of a group into one time series per benchmark
// name. Series are returned in order of first appearance and points in run
// order; a run that lacks a benchmark contributes no point to it.
func (s *Suite) Series(group string) ([]Series, error) {
	runs, err := s.Group(group)
	if err != nil {
		return nil, err
	}

	var out []Series
	index := make(map[string]int)
	for _, e := range runs {
		for _, b := range e.Benches {
			i, ok := index[b.Name]
			if !ok {
				i = len(out)
				index[b.Name] = i
				out = append(out, Series{Name: b.Name, Unit: b.Unit})
			}
			out[i].Points = append(out[i].Points, Point{
				CommitID: e.Commit.ID,
				Date:     e.Date,
				Value:    b.Value,
				Range:    b.Range,
			})
		}
	}
	return out, nil
}
