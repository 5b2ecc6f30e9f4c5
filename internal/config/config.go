// Package config loads the .tsreassemble.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up by Find.
const FileName = ".tsreassemble.yaml"

// Config models the project file. Keys missing from the file keep their
// Default values.
type Config struct {
	Path string `yaml:"-"`

	// DB is the SQLite database holding the file registry and merge cache.
	DB string `yaml:"db"`
	// OutDir receives merged files. Empty writes next to the compiled file.
	OutDir string `yaml:"out_dir"`
	// Extension replaces the compiled file's extension in output names.
	Extension string `yaml:"extension"`
	// Exclude holds ECMAScript regular expressions matched against paths.
	Exclude []string `yaml:"exclude"`
	// Pair is a Risor expression or .risor file choosing declaration paths.
	Pair string `yaml:"pair"`
	// Parallel merges files on a worker pool.
	Parallel bool `yaml:"parallel"`
	// Indent is the printer's indentation unit. Empty detects it from each
	// compiled file.
	Indent string `yaml:"indent"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DB:        ".tsreassemble.db",
		Extension: ".ts",
		Parallel:  true,
	}
}

// Load parses a project file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	cfg.normalize()
	return cfg, nil
}

// Find walks from dir towards the filesystem root and returns the first
// project file found.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve returns the config at path, or the one found from dir, or
// Default when neither exists.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if found, ok := Find(dir); ok {
		return Load(found)
	}
	return Default(), nil
}

func (c *Config) normalize() {
	c.Extension = strings.TrimSpace(c.Extension)
	if c.Extension == "" {
		c.Extension = ".ts"
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	c.Pair = strings.TrimSpace(c.Pair)
	if c.Path != "" {
		base := filepath.Dir(c.Path)
		if c.DB != "" && !filepath.IsAbs(c.DB) {
			c.DB = filepath.Join(base, c.DB)
		}
		if c.OutDir != "" && !filepath.IsAbs(c.OutDir) {
			c.OutDir = filepath.Join(base, c.OutDir)
		}
	}
}

// OutputPath returns where the merged form of compiledPath is written.
func (c *Config) OutputPath(compiledPath string) string {
	ext := filepath.Ext(compiledPath)
	name := strings.TrimSuffix(filepath.Base(compiledPath), ext) + c.Extension
	if c.OutDir == "" {
		return filepath.Join(filepath.Dir(compiledPath), name)
	}
	return filepath.Join(c.OutDir, name)
}
