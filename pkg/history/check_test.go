// SPDX-License-Identifier: Apache-2.0

package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/benchhistory/pkg/history"
)

func TestCheckFlagsRerunCommit(t *testing.T) {
	t.Parallel()

	s, err := history.LoadFile("testdata/snapshot-3.js")
	require.NoError(t, err)

	anomalies := s.Check()
	require.Len(t, anomalies, 1)

	a := anomalies[0]
	assert.Equal(t, history.AnomalyDuplicateCommit, a.Kind)
	assert.Equal(t, rustGroup, a.Group)
	assert.Equal(t, 1, a.Index)
	assert.Equal(t, "52972b3a62fc1e68c68a7812e49b1c7d9e66d018", a.CommitID)
	assert.Contains(t, a.String(), "duplicate_commit")
}

func TestCheckCleanHistory(t *testing.T) {
	t.Parallel()

	s := history.NewSuite("https://example.com/repo")
	require.NoError(t, s.Append("g", newEntry("a", 1, 1)))
	require.NoError(t, s.Append("g", newEntry("b", 2, 1)))
	require.NoError(t, s.Append("h", newEntry("a", 1, 1)))

	assert.Empty(t, s.Check())
}

func TestCheckOutOfOrderAndDuplicate(t *testing.T) {
	t.Parallel()

	s := history.NewSuite("https://example.com/repo")
	require.NoError(t, s.Append("g", newEntry("a", 10, 1)))
	require.NoError(t, s.Append("g", newEntry("a", 5, 1)))

	anomalies := s.Check()
	require.Len(t, anomalies, 2)
	assert.Equal(t, history.AnomalyOutOfOrder, anomalies[0].Kind)
	assert.Equal(t, history.AnomalyDuplicateCommit, anomalies[1].Kind)
	assert.Equal(t, int64(10), s.LastUpdate)
}
