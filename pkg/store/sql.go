// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xataio/benchhistory/pkg/db"
	"github.com/xataio/benchhistory/pkg/history"
)

const (
	sqlSelectMeta       = `SELECT repo_url, last_update FROM suite WHERE id = 1`
	sqlInsertMeta       = `INSERT INTO suite (id, repo_url, last_update) VALUES (1, ?, 0) ON CONFLICT (id) DO NOTHING`
	sqlUpdateLastUpdate = `UPDATE suite SET last_update = ? WHERE id = 1`
	sqlInsertEntry      = `INSERT INTO entries (group_name, commit_id, run_date, entry) VALUES (?, ?, ?, ?)`
	sqlSelectEntries    = `SELECT group_name, entry FROM entries ORDER BY seq`
	sqlTruncateGroup    = `DELETE FROM entries WHERE group_name = ? AND seq NOT IN (
		SELECT seq FROM entries WHERE group_name = ? ORDER BY seq DESC LIMIT ?)`
)

// sqlMergeMeta keeps a recorded repository URL and never moves the last
// update date backwards.
const sqlMergeMeta = `UPDATE suite SET
	repo_url = CASE WHEN repo_url = '' THEN ? ELSE repo_url END,
	last_update = CASE WHEN last_update < ? THEN ? ELSE last_update END
	WHERE id = 1`

// queryer is satisfied by both *sql.Tx and db.DB.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlStore implements Store on top of a SQL database. Runs are stored one
// row each, in append order; the suite row holds the repository URL and
// the last update date.
type sqlStore struct {
	conn   db.DB
	opts   *options
	name   string
	rebind func(string) string
	init   string
}

func (s *sqlStore) Init(ctx context.Context) error {
	return s.conn.WithRetryableTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.init); err != nil {
			return fmt.Errorf("creating %s tables: %w", s.name, err)
		}
		_, err := tx.ExecContext(ctx, s.rebind(sqlInsertMeta), s.opts.repoURL)
		return err
	})
}

func (s *sqlStore) Load(ctx context.Context) (*history.Suite, error) {
	suite, err := s.load(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	s.opts.logger.LogLoad(s.name, suite)
	return suite, nil
}

func (s *sqlStore) Append(ctx context.Context, group string, e history.Entry) error {
	return s.conn.WithRetryableTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		suite, err := s.load(ctx, tx)
		if err != nil {
			return err
		}

		dropped, err := s.opts.apply(suite, group, e)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("unable to marshal entry: %w", err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(sqlInsertEntry), group, e.Commit.ID, e.Date, string(raw))
		if err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(sqlUpdateLastUpdate), suite.LastUpdate)
		if err != nil {
			return fmt.Errorf("updating last update: %w", err)
		}

		if dropped > 0 {
			_, err = tx.ExecContext(ctx, s.rebind(sqlTruncateGroup), group, group, s.opts.maxItems)
			if err != nil {
				return fmt.Errorf("dropping oldest entries: %w", err)
			}
		}
		return nil
	})
}

func (s *sqlStore) MergeMeta(ctx context.Context, repoURL string, lastUpdate int64) error {
	return s.conn.WithRetryableTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.rebind(sqlMergeMeta), repoURL, lastUpdate, lastUpdate)
		if err != nil {
			return fmt.Errorf("merging suite metadata: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotInitialized
		}
		return nil
	})
}

func (s *sqlStore) Close() error {
	return s.conn.Close()
}

func (s *sqlStore) load(ctx context.Context, q queryer) (*history.Suite, error) {
	var repoURL string
	var lastUpdate int64
	err := q.QueryRowContext(ctx, s.rebind(sqlSelectMeta)).Scan(&repoURL, &lastUpdate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}

	rows, err := q.QueryContext(ctx, s.rebind(sqlSelectEntries))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suite := history.NewSuite(repoURL)
	for rows.Next() {
		var group, raw string
		if err := rows.Scan(&group, &raw); err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}

		var e history.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("unable to unmarshal entry: %w", err)
		}
		if err := suite.Append(group, e); err != nil {
			return nil, fmt.Errorf("stored entry: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	suite.LastUpdate = lastUpdate
	return suite, nil
}

// rebindDollar rewrites `?` placeholders as `$1`, `$2`, ... The queries in
// this package never contain a literal question mark.
func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func rebindNone(query string) string {
	return query
}
