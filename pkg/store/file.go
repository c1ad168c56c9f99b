// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xataio/benchhistory/pkg/history"
)

// FileStore keeps the history in the dashboard file itself. Appends rewrite
// the whole file through a temporary file and a rename, so readers never
// see a partially written file. There is no locking between writers.
type FileStore struct {
	path string
	opts *options
}

func NewFileStore(path string, opts ...Option) *FileStore {
	return &FileStore{
		path: path,
		opts: newOptions(opts),
	}
}

// Path returns the location of the dashboard file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Init(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !isNotExist(err) {
		return err
	}
	return s.write(history.NewSuite(s.opts.repoURL))
}

func (s *FileStore) Load(ctx context.Context) (*history.Suite, error) {
	suite, err := history.LoadFile(s.path)
	if err != nil {
		if isNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	s.opts.logger.LogLoad(s.path, suite)
	return suite, nil
}

// Append loads the file, adds e and writes the file back. A missing file is
// treated as an empty history.
func (s *FileStore) Append(ctx context.Context, group string, e history.Entry) error {
	suite, err := s.Load(ctx)
	switch {
	case errors.Is(err, ErrNotInitialized):
		suite = history.NewSuite(s.opts.repoURL)
	case err != nil:
		return err
	}

	if _, err := s.opts.apply(suite, group, e); err != nil {
		return err
	}
	return s.write(suite)
}

// MergeMeta rewrites the file with the merged metadata. A missing file is
// treated as an empty history.
func (s *FileStore) MergeMeta(ctx context.Context, repoURL string, lastUpdate int64) error {
	suite, err := s.Load(ctx)
	switch {
	case errors.Is(err, ErrNotInitialized):
		suite = history.NewSuite(s.opts.repoURL)
	case err != nil:
		return err
	}

	if suite.RepoURL == "" {
		suite.RepoURL = repoURL
	}
	if lastUpdate > suite.LastUpdate {
		suite.LastUpdate = lastUpdate
	}
	return s.write(suite)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) write(suite *history.Suite) error {
	data, err := history.Render(suite)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, data, 0o644)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
