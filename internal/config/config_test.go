package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeConfig(t, dir, `db: cache.db
out_dir: out
extension: mts
exclude:
  - node_modules/
  - '\.min\.js$'
pair: 'dir + "/types/" + stem + ".d.ts"'
parallel: false
indent: "\t"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.DB)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutDir)
	assert.Equal(t, ".mts", cfg.Extension)
	assert.Equal(t, []string{"node_modules/", `\.min\.js$`}, cfg.Exclude)
	assert.Equal(t, `dir + "/types/" + stem + ".d.ts"`, cfg.Pair)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, "\t", cfg.Indent)
}

func TestLoad_DefaultsForMissingKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := Load(writeConfig(t, dir, "exclude: [vendor]\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".tsreassemble.db"), cfg.DB)
	assert.Equal(t, ".ts", cfg.Extension)
	assert.True(t, cfg.Parallel)
	assert.Empty(t, cfg.Indent)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, t.TempDir(), ""))
	require.NoError(t, err)
	assert.True(t, cfg.Parallel)
}

func TestLoad_UnknownKey(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, t.TempDir(), "db: x.db\nworkers: 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load("")
	assert.Error(t, err)
}

func TestFindAndResolve(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path := writeConfig(t, root, "extension: .tsx\n")

	found, ok := Find(nested)
	require.True(t, ok)
	assert.Equal(t, path, found)

	cfg, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, ".tsx", cfg.Extension)

	cfg, err = Resolve("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()
	cfg := Default()
	assert.Equal(t, filepath.Join("src", "foo.ts"), cfg.OutputPath(filepath.Join("src", "foo.js")))

	cfg.OutDir = "out"
	cfg.Extension = ".mts"
	assert.Equal(t, filepath.Join("out", "foo.mts"), cfg.OutputPath(filepath.Join("src", "foo.mjs")))
}
