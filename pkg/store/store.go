// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xataio/benchhistory/internal/connstr"
	"github.com/xataio/benchhistory/pkg/history"
)

var ErrNotInitialized = errors.New("benchmark store is not initialized, run 'benchhistory init' to initialize")

// Store is durable, append-only storage for a benchmark history.
//
// Every backend follows the same batch contract: Append reads the whole
// history, validates and adds one run, and persists the result. A rejected
// run leaves the stored history unchanged.
type Store interface {
	// Init creates the storage for an empty history if it does not exist.
	Init(ctx context.Context) error

	// Load returns the stored history.
	Load(ctx context.Context) (*history.Suite, error)

	// Append adds e to the end of group.
	Append(ctx context.Context, group string, e history.Entry) error

	// MergeMeta records repoURL if the stored history has none and moves
	// the last update date forward to lastUpdate if it is later.
	MergeMeta(ctx context.Context, repoURL string, lastUpdate int64) error

	Close() error
}

// Open returns the Store for a location. Postgres URLs open a PostgresStore,
// sqlite:// URLs and .db/.sqlite paths open a SQLiteStore and any other
// path is treated as a dashboard file.
func Open(ctx context.Context, location string, opts ...Option) (Store, error) {
	if location == "" {
		return nil, errors.New("no store location given")
	}

	switch connstr.Detect(location) {
	case connstr.BackendPostgres:
		return NewPostgresStore(ctx, location, opts...)
	case connstr.BackendSQLite:
		return NewSQLiteStore(ctx, location, opts...)
	default:
		return NewFileStore(location, opts...), nil
	}
}

// Export writes the history held by st to path as a dashboard file.
func Export(ctx context.Context, st Store, path string) error {
	s, err := st.Load(ctx)
	if err != nil {
		return err
	}

	data, err := history.Render(s)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}

// Import appends every run of the dashboard file at path to st, group by
// group, in file order, then merges the file's repository URL and last
// update date into st.
func Import(ctx context.Context, st Store, path string) (int, error) {
	s, err := history.LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	n := 0
	for _, group := range s.Groups() {
		runs, _ := s.Group(group)
		for _, e := range runs {
			if err := st.Append(ctx, group, e); err != nil {
				return n, fmt.Errorf("importing %s run %s: %w", group, e.Commit.ShortID(), err)
			}
			n++
		}
	}

	if err := st.MergeMeta(ctx, s.RepoURL, s.LastUpdate); err != nil {
		return n, fmt.Errorf("importing suite metadata: %w", err)
	}
	return n, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
