// SPDX-License-Identifier: Apache-2.0

package connstr

import (
	"fmt"
	"maps"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
)

// Backend identifies which store implementation a location refers to.
type Backend int

const (
	BackendFile Backend = iota
	BackendSQLite
	BackendPostgres
)

func (b Backend) String() string {
	switch b {
	case BackendSQLite:
		return "sqlite"
	case BackendPostgres:
		return "postgres"
	default:
		return "file"
	}
}

// Detect returns the backend for a store location: a Postgres URL, an
// sqlite:// URL or a path ending in .db, .sqlite or .sqlite3, and
// otherwise a dashboard file path.
func Detect(location string) Backend {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return BackendSQLite
	}

	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return BackendSQLite
	}
	return BackendFile
}

// SQLiteDSN turns an sqlite:// URL or a plain path into a DSN for the
// modernc.org/sqlite driver, setting a busy timeout and foreign keys on
// every connection.
func SQLiteDSN(location string, busyTimeoutMs int) string {
	path := location
	if rest, ok := strings.CutPrefix(location, "sqlite://"); ok {
		path = rest
	}
	if strings.HasPrefix(path, "file:") {
		return path
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMs))
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + path + "?" + q.Encode()
}

// AppendSettings sets run-time parameters for every session opened with the
// connection string, through the `options` query parameter. Settings are
// written in key order.
func AppendSettings(connStr string, settings map[string]string) (string, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse connection string: %w", err)
	}

	if len(settings) == 0 {
		return connStr, nil
	}

	opts := make([]string, 0, len(settings))
	for _, k := range slices.Sorted(maps.Keys(settings)) {
		opts = append(opts, fmt.Sprintf("-c %s=%s", k, settings[k]))
	}

	q := u.Query()
	q.Set("options", strings.Join(opts, " "))
	encodedQuery := q.Encode()

	// Replace '+' with '%20' to ensure proper encoding of spaces within the
	// `options` query parameter.
	encodedQuery = strings.ReplaceAll(encodedQuery, "+", "%20")

	u.RawQuery = encodedQuery

	return u.String(), nil
}

// Redact hides the password of a URL-style location so that it can be
// logged.
func Redact(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.User == nil {
		return location
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
