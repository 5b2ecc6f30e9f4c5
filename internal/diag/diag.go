// Package diag holds the error sentinels and the non-fatal diagnostics
// reported while copying and reassembling trees.
package diag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jward/tsreassemble/internal/ast"
)

var (
	// ErrMalformedInput is returned for an empty top-level collection or a
	// collection without a file reference.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvariant is returned when a matched pair is structurally
	// inconsistent. The whole call is aborted.
	ErrInvariant = errors.New("invariant violation")
	// ErrUnsupportedKind marks a node kind with no copy or reconcile rule.
	// It is only ever reported as a diagnostic code.
	ErrUnsupportedKind = errors.New("unsupported node kind")
)

// Code classifies a diagnostic.
type Code string

const (
	CodeUnsupportedKind Code = "unsupported-kind"
	CodeExtraParameter  Code = "extra-parameter"
	CodeUnmatched       Code = "unmatched"
)

// Diagnostic is a non-fatal finding.
type Diagnostic struct {
	Code    Code     `json:"code"`
	Kind    ast.Kind `json:"-"`
	KindStr string   `json:"kind"`
	Message string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Code, d.KindStr, d.Message)
}

// Collector accumulates diagnostics for one call and mirrors each one to a
// logger at Warn level (Debug for unmatched nodes).
type Collector struct {
	mu     sync.Mutex
	logger *slog.Logger
	diags  []Diagnostic
}

// NewCollector returns a Collector logging to logger. A nil logger discards.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collector{logger: logger}
}

// Report records a diagnostic.
func (c *Collector) Report(code Code, kind ast.Kind, format string, args ...any) {
	d := Diagnostic{
		Code:    code,
		Kind:    kind,
		KindStr: kind.String(),
		Message: fmt.Sprintf(format, args...),
	}
	level := slog.LevelWarn
	if code == CodeUnmatched {
		level = slog.LevelDebug
	}
	c.logger.Log(context.Background(), level, d.Message,
		"code", string(d.Code),
		"kind", d.KindStr,
	)

	c.mu.Lock()
	c.diags = append(c.diags, d)
	c.mu.Unlock()
}

// Unsupported reports a node kind with no rule.
func (c *Collector) Unsupported(n ast.Node, op string) {
	kind := ast.KindUnknown
	if n != nil {
		kind = n.Kind()
	}
	c.Report(CodeUnsupportedKind, kind, "%s: %v", op, ErrUnsupportedKind)
}

// Diagnostics returns a copy of what has been reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Invariantf builds an ErrInvariant-wrapping error.
func Invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
