package tsreassemble

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tsreassemble/internal/config"
	"github.com/jward/tsreassemble/internal/pairing"
	"github.com/jward/tsreassemble/internal/parse"
)

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	e, err := NewEngine(dbPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	compiledSrc    = "export class A {\n  constructor(a) { this.a = a; }\n  at(k) { return this.a[k]; }\n}\n"
	declarationSrc = "export declare class A<T> {\n  constructor(a: T[]);\n  at(k: number): T;\n}\n"
)

func TestNewEngine_CreatesStore(t *testing.T) {
	e := newTestEngine(t)
	require.NotNil(t, e.Store())
	require.NotNil(t, e.service)
	assert.Equal(t, config.Default(), e.Config())

	n, err := e.Store().MergeCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewEngine_InvalidPath(t *testing.T) {
	_, err := NewEngine("/nonexistent/dir/db.sqlite")
	require.Error(t, err)
}

func TestNewEngine_InvalidExclude(t *testing.T) {
	_, err := NewEngine(filepath.Join(t.TempDir(), "test.db"), WithExclude("("))
	require.Error(t, err)
}

func TestMergeFile(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)
	ctx := context.Background()

	res, err := e.MergeFile(ctx, js, "")
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, filepath.Join(dir, "a.d.ts"), res.DeclarationPath)
	assert.Equal(t, filepath.Join(dir, "a.ts"), res.OutputPath)
	assert.Contains(t, res.Content, "export class A<T> {")
	assert.Contains(t, res.Content, "constructor(a: T[]) { this.a = a; }")
	assert.Contains(t, res.Content, "at(k: number): T { return this.a[k]; }")
	assert.Equal(t, Stats{Statements: 1, Matched: 1}, res.Stats)

	again, err := e.MergeFile(ctx, js, "")
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, res.Content, again.Content)
	assert.Equal(t, res.Stats, again.Stats)

	n, err := e.Store().MergeCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMergeFile_DeclarationChangeInvalidatesCache(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	dts := writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)
	ctx := context.Background()

	_, err := e.MergeFile(ctx, js, "")
	require.NoError(t, err)

	writeFile(t, dts, "export declare class A {\n  at(k: string): unknown;\n}\n")
	res, err := e.MergeFile(ctx, js, "")
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Contains(t, res.Content, "at(k: string): unknown {")

	f, err := e.Store().FileByPath(dts)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Version)
}

func TestMergeFile_ExplicitDeclaration(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "dist", "a.js"), compiledSrc)
	dts := writeFile(t, filepath.Join(dir, "types", "index.d.ts"), declarationSrc)

	res, err := e.MergeFile(context.Background(), js, dts)
	require.NoError(t, err)
	assert.Equal(t, dts, res.DeclarationPath)
	assert.Contains(t, res.Content, "at(k: number): T")
}

func TestMergeFile_Errors(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	ctx := context.Background()

	t.Run("no pairing", func(t *testing.T) {
		ts := writeFile(t, filepath.Join(dir, "a.ts"), "let a = 1;\n")
		_, err := e.MergeFile(ctx, ts, "")
		require.ErrorIs(t, err, pairing.ErrNoDeclaration)
	})

	t.Run("missing declaration", func(t *testing.T) {
		js := writeFile(t, filepath.Join(dir, "b.js"), compiledSrc)
		_, err := e.MergeFile(ctx, js, "")
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("syntax error", func(t *testing.T) {
		js := writeFile(t, filepath.Join(dir, "c.js"), "class C {\n")
		writeFile(t, filepath.Join(dir, "c.d.ts"), "declare class C {}\n")
		_, err := e.MergeFile(ctx, js, "")
		var serr *parse.SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("empty compiled file", func(t *testing.T) {
		js := writeFile(t, filepath.Join(dir, "d.js"), "")
		writeFile(t, filepath.Join(dir, "d.d.ts"), "declare const d: number;\n")
		_, err := e.MergeFile(ctx, js, "")
		require.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestMergeFiles_SerialAndParallelAgree(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a", "b", "c", "d"} {
		paths = append(paths, writeFile(t, filepath.Join(dir, name+".js"), compiledSrc))
		writeFile(t, filepath.Join(dir, name+".d.ts"), declarationSrc)
	}
	ctx := context.Background()

	serial, err := newTestEngine(t, WithParallel(false)).MergeFiles(ctx, paths)
	require.NoError(t, err)
	parallel, err := newTestEngine(t, WithParallel(true)).MergeFiles(ctx, paths)
	require.NoError(t, err)

	require.Len(t, serial, len(paths))
	require.Len(t, parallel, len(paths))
	for i := range paths {
		assert.Equal(t, paths[i], serial[i].CompiledPath)
		assert.Equal(t, paths[i], parallel[i].CompiledPath)
		assert.Equal(t, serial[i].Content, parallel[i].Content)
	}
}

func TestMergeFiles_CollectsErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)
	bad := writeFile(t, filepath.Join(dir, "b.js"), compiledSrc)

	for _, parallel := range []bool{false, true} {
		e := newTestEngine(t, WithParallel(parallel))
		results, err := e.MergeFiles(context.Background(), []string{good, bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 error(s)")
		require.Len(t, results, 1)
		assert.Equal(t, good, results[0].CompiledPath)
	}
}

func TestMergeFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestEngine(t).MergeFiles(ctx, []string{js})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.js"), compiledSrc)
	writeFile(t, filepath.Join(root, "src", "a.d.ts"), declarationSrc)
	writeFile(t, filepath.Join(root, "src", "no-types.js"), compiledSrc)
	writeFile(t, filepath.Join(root, "node_modules", "dep", "b.js"), compiledSrc)
	writeFile(t, filepath.Join(root, "node_modules", "dep", "b.d.ts"), declarationSrc)
	writeFile(t, filepath.Join(root, ".cache", "c.js"), compiledSrc)
	writeFile(t, filepath.Join(root, ".cache", "c.d.ts"), declarationSrc)
	writeFile(t, filepath.Join(root, "lib", "d.min.js"), compiledSrc)
	writeFile(t, filepath.Join(root, "lib", "d.min.d.ts"), declarationSrc)

	e := newTestEngine(t, WithExclude(`\.min\.js$`))
	results, err := e.MergeDirectory(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "src", "a.js"), results[0].CompiledPath)
}

func TestWithConfig(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	writeFile(t, filepath.Join(dir, "types", "a.d.ts"), declarationSrc)

	cfg := config.Default()
	cfg.Pair = `dir + "/types/" + stem + ".d.ts"`
	cfg.OutDir = filepath.Join(dir, "out")
	cfg.Indent = "\t"
	cfg.Parallel = false

	e := newTestEngine(t, WithConfig(cfg))
	assert.False(t, e.useParallel)

	res, err := e.MergeFile(context.Background(), js, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "types", "a.d.ts"), res.DeclarationPath)
	assert.Equal(t, filepath.Join(dir, "out", "a.ts"), res.OutputPath)
	assert.Contains(t, res.Content, "\n\tat(k: number): T {")

	require.NoError(t, e.WriteResult(res))
	written, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, res.Content, string(written))
}

func TestWithPairingOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)

	cfg := config.Default()
	cfg.Pair = `"does-not-exist.d.ts"`
	e := newTestEngine(t, WithConfig(cfg), WithPairing(pairing.Default{}))

	res, err := e.MergeFile(context.Background(), js, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.d.ts"), res.DeclarationPath)
}

func TestFilesAndForget(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "a.js"), compiledSrc)
	dts := writeFile(t, filepath.Join(dir, "a.d.ts"), declarationSrc)

	_, err := e.MergeFile(context.Background(), js, "")
	require.NoError(t, err)

	files, err := e.Files("")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, dts, files[0].Path)
	assert.Equal(t, parse.TypeScript, files[0].Language)
	assert.Equal(t, js, files[1].Path)
	assert.Equal(t, 1, files[1].Version)

	files, err = e.Files(parse.JavaScript)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, js, files[0].Path)

	known, err := e.Forget(dts)
	require.NoError(t, err)
	assert.True(t, known)
	files, err = e.Files("")
	require.NoError(t, err)
	require.Len(t, files, 1)

	n, err := e.Store().MergeCount()
	require.NoError(t, err)
	assert.Zero(t, n)

	known, err = e.Forget(dts)
	require.NoError(t, err)
	assert.False(t, known)
}

func TestMergeFile_AnonymousDefaultDeclaration(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	js := writeFile(t, filepath.Join(dir, "x.js"), "export default function (a) {\n    return a;\n}\n")
	writeFile(t, filepath.Join(dir, "x.d.ts"), "export default function (a: string): string;\n")

	res, err := e.MergeFile(context.Background(), js, "")
	require.NoError(t, err)
	assert.Equal(t, "export default function(a: string): string {\n    return a;\n}\n", res.Content)
	assert.Equal(t, Stats{Statements: 1, Matched: 1}, res.Stats)
}
