package pairing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"src/foo.js", "src/foo.d.ts"},
		{"src/App.jsx", "src/App.d.ts"},
		{"lib/index.mjs", "lib/index.d.mts"},
		{"lib/index.cjs", "lib/index.d.cts"},
		{"LIB/X.JS", "LIB/X.d.ts"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Default{}.DeclarationFor(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Default{}.DeclarationFor(context.Background(), "src/foo.ts")
	assert.ErrorIs(t, err, ErrNoDeclaration)
}

func TestScript(t *testing.T) {
	t.Parallel()
	rule := NewScript(`dir + "/types/" + stem + ".d.ts"`)
	got, err := rule.DeclarationFor(context.Background(), "dist/foo.js")
	require.NoError(t, err)
	assert.Equal(t, "dist/types/foo.d.ts", got)
}

func TestScriptGlobals(t *testing.T) {
	t.Parallel()
	got, err := NewScript(`base + "|" + ext + "|" + path`).DeclarationFor(context.Background(), "a/b.mjs")
	require.NoError(t, err)
	assert.Equal(t, "b.mjs|.mjs|a/b.mjs", got)
}

func TestScriptNoDeclaration(t *testing.T) {
	t.Parallel()
	for _, src := range []string{`nil`, `""`} {
		_, err := NewScript(src).DeclarationFor(context.Background(), "foo.js")
		assert.ErrorIs(t, err, ErrNoDeclaration, src)
	}
}

func TestScriptErrors(t *testing.T) {
	t.Parallel()
	_, err := NewScript(`42`).DeclarationFor(context.Background(), "foo.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string result")

	_, err = NewScript(`undefined_name + 1`).DeclarationFor(context.Background(), "foo.js")
	require.Error(t, err)
}

func TestFromSpec(t *testing.T) {
	t.Parallel()

	r, err := FromSpec("")
	require.NoError(t, err)
	assert.IsType(t, Default{}, r)

	r, err = FromSpec(`stem + ".d.ts"`)
	require.NoError(t, err)
	assert.IsType(t, &Script{}, r)

	path := filepath.Join(t.TempDir(), "pair.risor")
	require.NoError(t, os.WriteFile(path, []byte(`"types/" + base`), 0o644))
	r, err = FromSpec(path)
	require.NoError(t, err)
	got, err := r.DeclarationFor(context.Background(), "x/foo.js")
	require.NoError(t, err)
	assert.Equal(t, "types/foo.js", got)

	_, err = FromSpec(filepath.Join(t.TempDir(), "missing.risor"))
	assert.Error(t, err)
}
