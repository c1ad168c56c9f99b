// SPDX-License-Identifier: Apache-2.0

package history

import (
	"os"

	"github.com/pterm/pterm"
)

// Logger is responsible for logging changes to a benchmark history.
type Logger interface {
	LogLoad(source string, s *Suite)
	LogAppend(group string, e *Entry)
	LogTruncate(group string, dropped int)
	LogAnomaly(a Anomaly)

	Info(msg string, args ...any)
}

type historyLogger struct {
	logger pterm.Logger
}

type noopLogger struct{}

func NewLogger() Logger {
	return &historyLogger{logger: pterm.DefaultLogger}
}

// NewLoggerWithLevel returns a Logger writing to stderr that drops records
// below level, keeping stdout free for command output.
func NewLoggerWithLevel(level pterm.LogLevel) Logger {
	return &historyLogger{logger: *pterm.DefaultLogger.WithLevel(level).WithWriter(os.Stderr)}
}

func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *historyLogger) LogLoad(source string, s *Suite) {
	entries := 0
	for _, g := range s.Entries.Labels() {
		runs, _ := s.Entries.Get(g)
		entries += len(runs)
	}
	l.logger.Debug("loaded benchmark data", l.logger.Args(
		"source", source,
		"groups", s.Entries.Len(),
		"entries", entries,
		"last_update", s.LastUpdate,
	))
}

func (l *historyLogger) LogAppend(group string, e *Entry) {
	l.logger.Info("appended benchmark run", l.logger.Args(
		"group", group,
		"commit", e.Commit.ShortID(),
		"tool", e.Tool,
		"benches", len(e.Benches),
		"date", e.Date,
	))
}

func (l *historyLogger) LogTruncate(group string, dropped int) {
	l.logger.Info("dropped oldest benchmark runs", l.logger.Args("group", group, "dropped", dropped))
}

func (l *historyLogger) LogAnomaly(a Anomaly) {
	l.logger.Warn("benchmark history anomaly", l.logger.Args(
		"kind", string(a.Kind),
		"group", a.Group,
		"index", a.Index,
		"commit", a.CommitID,
		"detail", a.Detail,
	))
}

func (l *historyLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.logger.Args(args...))
}

func (l *noopLogger) LogLoad(source string, s *Suite)       {}
func (l *noopLogger) LogAppend(group string, e *Entry)      {}
func (l *noopLogger) LogTruncate(group string, dropped int) {}
func (l *noopLogger) LogAnomaly(a Anomaly)                  {}
func (l *noopLogger) Info(msg string, args ...any)          {}
