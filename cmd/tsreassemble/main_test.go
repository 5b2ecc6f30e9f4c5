package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tsreassemble"
	"github.com/jward/tsreassemble/internal/config"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	err := validateFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json or text")
}

func TestResolveTargetDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	got, err := resolveTargetDir([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	file := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = resolveTargetDir([]string{file})
	assert.ErrorContains(t, err, "not a directory")

	_, err = resolveTargetDir([]string{filepath.Join(dir, "missing")})
	assert.ErrorContains(t, err, "directory not found")
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName),
		[]byte("db: cache.db\npair: stem + \".d.ts\"\nexclude:\n  - vendor/\n"), 0o644))

	flagDB, flagPair, flagExclude = "", "", []string{`\.min\.js$`}
	t.Cleanup(func() { flagDB, flagPair, flagExclude = "", "", nil })

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.DB)
	assert.Equal(t, `stem + ".d.ts"`, cfg.Pair)
	assert.Equal(t, []string{"vendor/", `\.min\.js$`}, cfg.Exclude)

	flagDB, flagPair, flagExclude = "other.db", `"x.d.ts"`, nil
	cfg, err = loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DB)
	assert.Equal(t, `"x.d.ts"`, cfg.Pair)
}

func TestWriteResult_JSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := writeResult(&buf, "json", CLIResult{Command: "merge", Results: []CLIMerge{{
		Compiled: "a.js", Declaration: "a.d.ts", Output: "a.ts", Matched: 2,
	}}})
	require.NoError(t, err)

	var decoded struct {
		Command string     `json:"command"`
		Results []CLIMerge `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "merge", decoded.Command)
	require.Len(t, decoded.Results, 1)
	assert.Equal(t, 2, decoded.Results[0].Matched)
	assert.NotContains(t, buf.String(), "error")
}

func TestFormatMergesText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	formatMergesText(&buf, []CLIMerge{
		{Compiled: "a.js", Declaration: "a.d.ts", Output: "a.ts", Matched: 1},
		{Compiled: "b.js", Declaration: "b.d.ts", Output: "b.ts", Cached: true, Diagnostics: []string{"unmatched: method: no declaration"}},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "COMPILED"))
	assert.Contains(t, lines[2], "true")
	assert.Equal(t, "b.js: unmatched: method: no declaration", lines[3])
}

func TestFormatFilesText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	formatFilesText(&buf, []CLIFile{{Path: "a.js", Language: "javascript", Version: 3, Hash: "0123456789abcdef"}})
	out := buf.String()
	assert.Contains(t, out, "PATH")
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abc")
}

func TestWriteResult_ForgetText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := writeResult(&buf, "text", CLIResult{Command: "forget", Results: []CLIForget{
		{Path: "/a.js", Removed: true},
		{Path: "/b.js"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "removed /a.js\nnot registered /b.js\n", buf.String())
}

func TestMergeToCLI(t *testing.T) {
	t.Parallel()
	got := mergeToCLI(&tsreassemble.MergeResult{
		CompiledPath:    "a.js",
		DeclarationPath: "a.d.ts",
		OutputPath:      "out/a.ts",
		Stats:           tsreassemble.Stats{Statements: 3, Matched: 2, Unmatched: 1},
		Cached:          true,
	})
	assert.Equal(t, CLIMerge{
		Compiled: "a.js", Declaration: "a.d.ts", Output: "out/a.ts",
		Cached: true, Matched: 2, Unmatched: 1,
	}, got)
}
