// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/xataio/benchhistory/internal/connstr"
	"github.com/xataio/benchhistory/pkg/db"
)

const sqlInitPostgres = `
CREATE SCHEMA IF NOT EXISTS %[1]s;

CREATE TABLE IF NOT EXISTS %[1]s.suite (
	id			INT PRIMARY KEY CHECK (id = 1),
	repo_url	TEXT NOT NULL,
	last_update	BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS %[1]s.entries (
	seq			BIGSERIAL PRIMARY KEY,
	group_name	TEXT NOT NULL,
	commit_id	TEXT NOT NULL CHECK (commit_id <> ''),
	run_date	BIGINT NOT NULL,
	entry		JSONB NOT NULL,
	created_at	TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS entries_group_seq ON %[1]s.entries (group_name, seq);
CREATE INDEX IF NOT EXISTS entries_commit_id ON %[1]s.entries (commit_id);
`

// PostgresStore keeps the history in two tables of a dedicated schema.
type PostgresStore struct {
	sqlStore
	schema string
}

// NewPostgresStore connects to the database at pgURL and creates the store
// tables if needed.
func NewPostgresStore(ctx context.Context, pgURL string, opts ...Option) (*PostgresStore, error) {
	o := newOptions(opts)

	settings := map[string]string{"search_path": o.schema}
	if o.lockTimeoutMs > 0 {
		settings["lock_timeout"] = strconv.Itoa(o.lockTimeoutMs) + "ms"
	}
	dsn, err := connstr.AppendSettings(pgURL, settings)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to %s: %w", connstr.Redact(pgURL), err)
	}

	st := &PostgresStore{
		sqlStore: sqlStore{
			conn:   &db.RDB{DB: conn},
			opts:   o,
			name:   "postgres",
			rebind: rebindDollar,
			init:   fmt.Sprintf(sqlInitPostgres, pq.QuoteIdentifier(o.schema)),
		},
		schema: o.schema,
	}

	if err := st.Init(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return st, nil
}

// Schema returns the schema holding the store tables
func (s *PostgresStore) Schema() string {
	return s.schema
}
