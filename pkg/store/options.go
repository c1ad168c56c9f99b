// SPDX-License-Identifier: Apache-2.0

package store

import "github.com/xataio/benchhistory/pkg/history"

const (
	DefaultPostgresSchema = "benchhistory"
	DefaultBusyTimeoutMs  = 5000
)

type options struct {
	// repository URL recorded when a new history is created
	repoURL string

	// reject runs that Suite.Check would report
	strict bool

	// keep at most this many runs per group, 0 keeps everything
	maxItems int

	// schema holding the Postgres tables
	schema string

	// lock timeout in milliseconds for Postgres sessions
	lockTimeoutMs int

	// how long SQLite waits on a locked database before returning SQLITE_BUSY
	busyTimeoutMs int

	logger history.Logger
}

type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		schema:        DefaultPostgresSchema,
		busyTimeoutMs: DefaultBusyTimeoutMs,
		logger:        history.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRepoURL sets the repository URL of a newly created history
func WithRepoURL(url string) Option {
	return func(o *options) {
		o.repoURL = url
	}
}

// WithStrict rejects runs dated before the previous run of their group and
// runs for a commit already recorded in their group.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithMaxItems keeps only the newest n runs of a group after each append.
func WithMaxItems(n int) Option {
	return func(o *options) {
		o.maxItems = n
	}
}

// WithSchema sets the Postgres schema in which the store keeps its tables
func WithSchema(schema string) Option {
	return func(o *options) {
		o.schema = schema
	}
}

// WithLockTimeoutMs sets the lock timeout in milliseconds for Postgres
// sessions. Statements that time out waiting for a lock are retried.
func WithLockTimeoutMs(ms int) Option {
	return func(o *options) {
		o.lockTimeoutMs = ms
	}
}

// WithBusyTimeoutMs sets the SQLite busy timeout in milliseconds
func WithBusyTimeoutMs(ms int) Option {
	return func(o *options) {
		o.busyTimeoutMs = ms
	}
}

// WithLogger sets the logger used to report appends and anomalies
func WithLogger(l history.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// apply adds e to s following the options, returning the number of runs
// dropped to honour maxItems.
func (o *options) apply(s *history.Suite, group string, e history.Entry) (int, error) {
	var err error
	if o.strict {
		err = s.AppendStrict(group, e)
	} else {
		err = s.Append(group, e)
	}
	if err != nil {
		return 0, err
	}

	o.logger.LogAppend(group, &e)

	runs, _ := s.Group(group)
	for _, a := range s.Check() {
		if a.Group == group && a.Index == len(runs)-1 {
			o.logger.LogAnomaly(a)
		}
	}

	dropped := s.Truncate(group, o.maxItems)
	if dropped > 0 {
		o.logger.LogTruncate(group, dropped)
	}
	return dropped, nil
}
