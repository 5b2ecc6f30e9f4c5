package tsreassemble

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/copier"
	"github.com/jward/tsreassemble/internal/diag"
	"github.com/jward/tsreassemble/internal/matcher"
	"github.com/jward/tsreassemble/internal/printer"
	"github.com/jward/tsreassemble/internal/reassembler"
)

// Printer serializes a reassembled file.
type Printer interface {
	Print(file *ast.SourceFile) string
}

// Reassembler drives whole-file reassembly. A Reassembler holds no per-call
// state and is safe for concurrent use as long as its Printer is.
type Reassembler struct {
	logger  *slog.Logger
	printer Printer
	indent  string
}

// Option configures a Reassembler.
type Option func(*Reassembler)

// WithLogger sets the logger diagnostics are mirrored to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reassembler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithIndent sets the indentation unit of the default printer. Without it
// the unit is detected from the compiled tree, falling back to four spaces.
func WithIndent(unit string) Option {
	return func(r *Reassembler) {
		if unit != "" {
			r.indent = unit
		}
	}
}

// WithPrinter replaces the default printer. p is shared by every call.
func WithPrinter(p Printer) Option {
	return func(r *Reassembler) {
		if p != nil {
			r.printer = p
		}
	}
}

// New returns a Reassembler.
func New(opts ...Option) *Reassembler {
	r := &Reassembler{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Options names the two trees of one reassembly. Each side may be a parsed
// *SourceFile or a bare NodeList.
type Options struct {
	Compiled    Container
	Declaration Container
}

// Stats counts what happened to the compiled top-level statements.
type Stats struct {
	Statements int `json:"statements"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
}

// Result is the output of a successful reassembly.
type Result struct {
	File        *SourceFile  `json:"-"`
	Content     string       `json:"content"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Stats       Stats        `json:"stats"`
}

// Reassemble merges the declaration's type information into the compiled
// tree. Top-level statements are matched against the declaration's top-level
// statements; nested nodes are matched only within their matched parent.
// On error no result is returned.
func (r *Reassembler) Reassemble(opts Options) (*Result, error) {
	compiled, err := topLevel("compiled", opts.Compiled)
	if err != nil {
		return nil, err
	}
	declared, err := topLevel("declaration", opts.Declaration)
	if err != nil {
		return nil, err
	}

	diags := diag.NewCollector(r.logger)
	ra := reassembler.New(copier.New(diags), diags)
	reportRecovered(diags, declared)

	out := &SourceFile{
		FileName:   opts.Compiled.File(),
		Statements: make([]Statement, 0, len(compiled)),
	}
	var stats Stats
	for i, stmt := range compiled {
		if stmt == nil {
			return nil, fmt.Errorf("tsreassemble: statement %d: %w", i, diag.Invariantf("nil statement"))
		}
		stats.Statements++
		match := matcher.FindMatch(stmt, declared)
		if match == nil {
			if isDeclaration(stmt) {
				stats.Unmatched++
				diags.Report(diag.CodeUnmatched, stmt.Kind(), "no declaration for %s", stmt.Kind())
			}
			out.Statements = append(out.Statements, stmt)
			continue
		}
		merged, err := ra.ReassembleStatement(stmt, match)
		if err != nil {
			return nil, fmt.Errorf("tsreassemble: reassemble %s: %w", opts.Compiled.File(), err)
		}
		stats.Matched++
		out.Statements = append(out.Statements, merged)
	}

	r.logger.Debug("reassembled file",
		"file", out.FileName,
		"statements", stats.Statements,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
	)
	return &Result{
		File:        out,
		Content:     r.print(out, compiled),
		Diagnostics: diags.Diagnostics(),
		Stats:       stats,
	}, nil
}

func (r *Reassembler) print(file *SourceFile, compiled []Statement) string {
	if r.printer != nil {
		return r.printer.Print(file)
	}
	unit := r.indent
	if unit == "" {
		unit = printer.DetectIndent(compiled)
	}
	return printer.New(printer.WithIndent(unit)).Print(file)
}

func topLevel(side string, c Container) ([]Statement, error) {
	if c == nil {
		return nil, fmt.Errorf("tsreassemble: %s: %w: no tree", side, ErrMalformedInput)
	}
	if c.File() == "" {
		return nil, fmt.Errorf("tsreassemble: %s: %w: missing file reference", side, ErrMalformedInput)
	}
	stmts := c.TopLevel()
	if len(stmts) == 0 {
		return nil, fmt.Errorf("tsreassemble: %s %s: %w: empty collection", side, c.File(), ErrMalformedInput)
	}
	return stmts, nil
}

// isDeclaration reports whether a statement is one the matcher can pair.
// Raw statements (imports, expressions) are never expected to match.
func isDeclaration(s Statement) bool {
	switch s.(type) {
	case *ast.ClassDeclaration, *ast.FunctionDeclaration, *ast.VariableStatement:
		return true
	}
	return false
}

// reportRecovered flags declaration nodes the parser could not lower. They
// never match, so their compiled counterparts pass through unannotated.
func reportRecovered(diags *diag.Collector, declared []Statement) {
	for _, s := range declared {
		switch s := s.(type) {
		case *ast.RawStatement:
			if s.Recovered {
				diags.Report(diag.CodeUnsupportedKind, s.Kind(), "unparseable declaration %q", firstLine(s.Text))
			}
		case *ast.ClassDeclaration:
			for _, m := range s.Members {
				if raw, ok := m.(*ast.RawMember); ok && raw.Recovered {
					diags.Report(diag.CodeUnsupportedKind, raw.Kind(), "unparseable class member %q", firstLine(raw.Text))
				}
			}
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
