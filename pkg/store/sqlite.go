// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/xataio/benchhistory/internal/connstr"
	"github.com/xataio/benchhistory/pkg/db"
)

const sqlInitSQLite = `
CREATE TABLE IF NOT EXISTS suite (
	id			INTEGER PRIMARY KEY CHECK (id = 1),
	repo_url	TEXT NOT NULL,
	last_update	INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS entries (
	seq			INTEGER PRIMARY KEY AUTOINCREMENT,
	group_name	TEXT NOT NULL,
	commit_id	TEXT NOT NULL CHECK (commit_id <> ''),
	run_date	INTEGER NOT NULL,
	entry		TEXT NOT NULL,
	created_at	DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS entries_group_seq ON entries (group_name, seq);
`

// SQLiteStore keeps the history in a local SQLite database.
type SQLiteStore struct {
	sqlStore
}

// NewSQLiteStore opens (creating if needed) the database at location and
// creates the store tables.
func NewSQLiteStore(ctx context.Context, location string, opts ...Option) (*SQLiteStore, error) {
	o := newOptions(opts)
	dsn := connstr.SQLiteDSN(location, o.busyTimeoutMs)

	if path := sqlitePath(dsn); path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	st := &SQLiteStore{
		sqlStore: sqlStore{
			conn:   &db.RDB{DB: conn},
			opts:   o,
			name:   "sqlite",
			rebind: rebindNone,
			init:   sqlInitSQLite,
		},
	}

	if err := st.Init(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	return path
}
