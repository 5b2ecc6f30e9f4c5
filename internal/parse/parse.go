// Package parse lowers JavaScript and TypeScript source into the syntax
// trees consumed by the reassembler, using tree-sitter grammars.
//
// Only the shapes the reassembler reconciles are lowered structurally:
// classes, functions and variable statements with their members, parameters
// and type annotations. Everything else is kept verbatim as raw nodes so the
// printer can reproduce it unchanged.
package parse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/diag"
)

// ErrUnknownLanguage is returned for a path whose extension maps to no
// supported grammar.
var ErrUnknownLanguage = errors.New("unknown language")

// SyntaxError reports the first error or missing node in a source file.
type SyntaxError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// Unwrap lets callers test syntax errors against diag.ErrMalformedInput.
func (e *SyntaxError) Unwrap() error { return diag.ErrMalformedInput }

// Parser turns source files into syntax trees. It is safe for concurrent
// use; each call builds its own tree-sitter parser.
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src using the grammar selected by path's extension.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*ast.SourceFile, error) {
	lang, ok := LanguageForFile(path)
	if !ok {
		return nil, fmt.Errorf("parse %s: %w", path, ErrUnknownLanguage)
	}
	return p.ParseLanguage(ctx, lang, path, src)
}

// ParseLanguage parses src with the named grammar. path is recorded as the
// file name of the result.
func (p *Parser) ParseLanguage(ctx context.Context, lang, path string, src []byte) (*ast.SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grammar, ok := GrammarForLanguage(lang)
	if !ok {
		return nil, fmt.Errorf("parse %s: %w: %q", path, ErrUnknownLanguage, lang)
	}

	// Declaration files are recovered statement by statement; compiled
	// sources must parse cleanly.
	lenient := IsDeclarationFile(path)
	if lenient {
		src = nameAnonymousDefaults(src)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		serr := syntaxError(path, root)
		if !lenient {
			p.logger.Warn("syntax error", "path", path, "line", serr.Line, "column", serr.Column)
			return nil, serr
		}
		p.logger.Warn("recovering from syntax error", "path", path, "line", serr.Line, "column", serr.Column)
	}

	l := &lowerer{src: src, lenient: lenient}
	file := &ast.SourceFile{FileName: path, Statements: l.program(root)}
	if lenient {
		unnameAnonymousDefaults(file)
	}
	p.logger.Debug("parsed file", "path", path, "language", lang, "statements", len(file.Statements))
	return file, nil
}

func syntaxError(path string, root *sitter.Node) *SyntaxError {
	missing := findFirst(root, func(n *sitter.Node) bool { return n.IsMissing() })
	node := missing
	if node == nil {
		node = findFirst(root, func(n *sitter.Node) bool { return n.Type() == "ERROR" })
	}
	if node == nil {
		node = root
	}
	msg := "syntax error"
	if missing != nil {
		msg = fmt.Sprintf("syntax error: expected %q", missing.Type())
	}
	start := node.StartPoint()
	return &SyntaxError{
		Path:    path,
		Line:    int(start.Row) + 1,
		Column:  int(start.Column) + 1,
		Message: msg,
	}
}

// findFirst returns the first node in pre-order satisfying match, descending
// only into subtrees that contain errors.
func findFirst(n *sitter.Node, match func(*sitter.Node) bool) *sitter.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := findFirst(n.Child(i), match); found != nil {
			return found
		}
	}
	return nil
}
