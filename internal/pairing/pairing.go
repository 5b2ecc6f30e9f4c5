// Package pairing chooses the declaration file that describes a compiled
// JavaScript file.
package pairing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
)

// ErrNoDeclaration is returned when a rule yields no declaration path.
var ErrNoDeclaration = errors.New("no declaration path")

// Rule maps a compiled path to its declaration path.
type Rule interface {
	DeclarationFor(ctx context.Context, compiledPath string) (string, error)
}

// declarationExt maps compiled extensions to declaration extensions.
var declarationExt = map[string]string{
	".js":  ".d.ts",
	".jsx": ".d.ts",
	".mjs": ".d.mts",
	".cjs": ".d.cts",
}

// Default pairs foo.js with foo.d.ts in the same directory.
type Default struct{}

func (Default) DeclarationFor(_ context.Context, compiledPath string) (string, error) {
	ext := filepath.Ext(compiledPath)
	decl, ok := declarationExt[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("pairing: %s: %w", compiledPath, ErrNoDeclaration)
	}
	return strings.TrimSuffix(compiledPath, ext) + decl, nil
}

// Script is a Rule written as a Risor expression. The expression sees the
// globals path, dir, base, stem and ext and must evaluate to a string. nil
// or an empty string means the file has no declaration.
//
//	dir + "/../types/" + stem + ".d.ts"
type Script struct {
	source string
	label  string
}

// NewScript returns a Script rule for inline Risor source.
func NewScript(source string) *Script {
	return &Script{source: source, label: "<inline>"}
}

// LoadScript reads a Risor rule from a file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pairing: loading script %s: %w", path, err)
	}
	return &Script{source: string(data), label: path}, nil
}

func (s *Script) DeclarationFor(ctx context.Context, compiledPath string) (string, error) {
	var opts []risor.Option
	for name, val := range scriptGlobals(compiledPath) {
		opts = append(opts, risor.WithGlobal(name, val))
	}
	result, err := risor.Eval(ctx, s.source, opts...)
	if err != nil {
		return "", fmt.Errorf("pairing: script %s: %w", s.label, err)
	}
	switch r := result.(type) {
	case *object.String:
		if r.Value() == "" {
			return "", fmt.Errorf("pairing: %s: %w", compiledPath, ErrNoDeclaration)
		}
		return r.Value(), nil
	case *object.NilType:
		return "", fmt.Errorf("pairing: %s: %w", compiledPath, ErrNoDeclaration)
	}
	return "", fmt.Errorf("pairing: script %s: expected string result, got %s", s.label, result.Type())
}

func scriptGlobals(compiledPath string) map[string]any {
	base := filepath.Base(compiledPath)
	ext := filepath.Ext(base)
	return map[string]any{
		"path": compiledPath,
		"dir":  filepath.Dir(compiledPath),
		"base": base,
		"stem": strings.TrimSuffix(base, ext),
		"ext":  ext,
	}
}

// FromSpec returns the Rule described by a config or flag value: empty for
// Default, a path ending in .risor for a script file, anything else for an
// inline expression.
func FromSpec(spec string) (Rule, error) {
	switch {
	case spec == "":
		return Default{}, nil
	case strings.HasSuffix(spec, ".risor"):
		return LoadScript(spec)
	}
	return NewScript(spec), nil
}
