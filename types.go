package tsreassemble

import (
	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/diag"
	"github.com/jward/tsreassemble/internal/store"
)

// Public aliases for the internal tree, diagnostic and store types used in
// the API. Callers use these names directly.

type Node = ast.Node
type Statement = ast.Statement
type SourceFile = ast.SourceFile
type NodeList = ast.NodeList
type Container = ast.Container
type Diagnostic = diag.Diagnostic
type DiagnosticCode = diag.Code
type Merge = store.Merge
type File = store.File

const (
	CodeUnsupportedKind = diag.CodeUnsupportedKind
	CodeExtraParameter  = diag.CodeExtraParameter
	CodeUnmatched       = diag.CodeUnmatched
)

var (
	// ErrMalformedInput is returned for an empty top-level collection or a
	// tree without a file name, before any traversal starts.
	ErrMalformedInput = diag.ErrMalformedInput
	// ErrInvariant is returned when a matched pair is structurally
	// inconsistent.
	ErrInvariant = diag.ErrInvariant
	// ErrUnsupportedKind is the error carried by degrade diagnostics. It is
	// never returned by Reassemble.
	ErrUnsupportedKind = diag.ErrUnsupportedKind
)
