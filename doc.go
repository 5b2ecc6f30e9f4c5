// Package tsreassemble restores the type information a TypeScript compiler
// strips from its JavaScript output. It parses the emitted JavaScript and
// the matching declaration file with tree-sitter, pairs up the declarations
// the two describe, and merges type annotations, type parameters, heritage
// clauses and modifiers from the declaration tree into the compiled tree.
//
// # Pipeline
//
//  1. Parse: both files are lowered to the syntax trees of internal/ast.
//     Syntax outside the modeled subset is kept verbatim.
//
//  2. Match: each top-level compiled statement is paired with the first
//     declaration statement of the same kind and name. Members, declarators
//     and parameters are paired only within their matched parent.
//
//  3. Reassemble: every matched pair is rebuilt with the declaration's
//     type-level fields. Bodies, initializers and ordering come from the
//     compiled tree. Neither input tree is modified.
//
//  4. Print: the merged tree is printed as TypeScript.
//
// # Usage
//
// Reassemble two trees directly:
//
//	res, err := tsreassemble.New().Reassemble(tsreassemble.Options{
//		Compiled:    compiledFile,
//		Declaration: declarationFile,
//	})
//
// Or let an Engine load, pair, cache and write files:
//
//	e, err := tsreassemble.NewEngine(".tsreassemble.db")
//	if err != nil { ... }
//	defer e.Close()
//
//	res, err := e.MergeFile(ctx, "dist/foo.js", "")
package tsreassemble
