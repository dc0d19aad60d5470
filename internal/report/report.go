// Package report is the diagnostic-reporting contract that the Store and
// Resolver write to. Grounded on the teacher's cmd/canopy logging
// convention (plain log.Printf, no structured logging library) but exposed
// as a Sink interface so callers can collect reports in memory for tests
// and the CLI's `dump` output instead of only printing them.
package report

import (
	"log"

	"github.com/vlang-tools/semgraph/internal/ast"
)

// Kind tags the severity/category of a Report.
type Kind int

const (
	KindError Kind = iota
	KindWarning
)

func (k Kind) String() string {
	if k == KindWarning {
		return "warning"
	}
	return "error"
}

// Report is one diagnostic: a data conflict, an unresolved symbol, a
// type mismatch, or a malformed-AST fallback notice (§7).
type Report struct {
	Kind     Kind
	Message  string
	Range    ast.Range
	FilePath string
}

// Sink accepts Reports as they're produced.
type Sink interface {
	Report(r Report)
}

// LogSink writes every report through log.Printf, mirroring the teacher's
// cmd/canopy/query.go convention of "warning: %s" lines with no structured
// logging library in between.
type LogSink struct {
	Logger Logger
}

// Logger is the subset of *log.Logger a LogSink needs; satisfied directly
// by the standard library's package-level log functions via stdLogger.
type Logger interface {
	Printf(format string, args ...any)
}

// NewLogSink wraps logger, or the standard library's default logger if nil.
func NewLogSink(logger Logger) *LogSink {
	if logger == nil {
		logger = stdLogger{}
	}
	return &LogSink{Logger: logger}
}

func (s *LogSink) Report(r Report) {
	s.Logger.Printf("%s: %s:%d:%d: %s", r.Kind, r.FilePath, r.Range.StartPoint.Row+1, r.Range.StartPoint.Column+1, r.Message)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) { log.Printf(format, args...) }

// CollectingSink accumulates reports in memory, for tests and for the CLI's
// `dump` command where printing immediately isn't wanted.
type CollectingSink struct {
	Reports []Report
}

func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Report(r Report) {
	s.Reports = append(s.Reports, r)
}
