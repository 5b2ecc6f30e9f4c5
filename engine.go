package tsreassemble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jward/tsreassemble/internal/config"
	"github.com/jward/tsreassemble/internal/langservice"
	"github.com/jward/tsreassemble/internal/pairing"
	"github.com/jward/tsreassemble/internal/parse"
	"github.com/jward/tsreassemble/internal/store"
)

// Engine loads compiled and declaration files, reassembles them and caches
// the results in SQLite. A merge is reused while the content hashes of both
// files are unchanged.
type Engine struct {
	store       *store.Store
	service     *langservice.Service
	reassembler *Reassembler
	cfg         *config.Config
	logger      *slog.Logger
	rule        pairing.Rule
	exclude     []string
	useParallel bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConfig applies a project configuration: exclusions, pairing rule,
// indentation, output location and parallelism.
func WithConfig(cfg *config.Config) EngineOption {
	return func(e *Engine) {
		if cfg == nil {
			return
		}
		e.cfg = cfg
		e.useParallel = cfg.Parallel
		e.exclude = append(e.exclude, cfg.Exclude...)
	}
}

// WithEngineLogger sets the logger shared by the Engine's components.
func WithEngineLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPairing sets the rule choosing declaration files. It takes precedence
// over the configured pair expression.
func WithPairing(rule pairing.Rule) EngineOption {
	return func(e *Engine) {
		e.rule = rule
	}
}

// WithExclude adds path exclusion patterns (ECMAScript regular expressions).
func WithExclude(patterns ...string) EngineOption {
	return func(e *Engine) {
		e.exclude = append(e.exclude, patterns...)
	}
}

// WithParallel controls whether MergeFiles uses a worker pool. Defaults to
// true.
func WithParallel(parallel bool) EngineOption {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// NewEngine creates an Engine backed by a SQLite database at dbPath.
func NewEngine(dbPath string, opts ...EngineOption) (*Engine, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("tsreassemble: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("tsreassemble: migrate: %w", err)
	}

	e := &Engine{
		store:       s,
		cfg:         config.Default(),
		logger:      slog.New(slog.DiscardHandler),
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.rule == nil {
		rule, err := pairing.FromSpec(e.cfg.Pair)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("tsreassemble: pairing rule: %w", err)
		}
		e.rule = rule
	}
	e.service = langservice.New(s,
		langservice.WithParser(parse.New(parse.WithLogger(e.logger))),
		langservice.WithPairing(e.rule),
		langservice.WithLogger(e.logger),
	)
	if err := e.service.ExcludeFiles(e.exclude...); err != nil {
		s.Close()
		return nil, fmt.Errorf("tsreassemble: %w", err)
	}
	e.reassembler = New(
		WithLogger(e.logger),
		WithIndent(e.cfg.Indent),
	)
	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Config returns the configuration in effect.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// MergeResult describes one merged file.
type MergeResult struct {
	CompiledPath    string   `json:"compiled_path"`
	DeclarationPath string   `json:"declaration_path"`
	OutputPath      string   `json:"output_path"`
	Content         string   `json:"-"`
	Diagnostics     []string `json:"diagnostics"`
	Stats           Stats    `json:"stats"`
	Cached          bool     `json:"cached"`
}

// pendingMerge is a file pair loaded and hashed, ready to reassemble.
type pendingMerge struct {
	compiledPath    string
	declarationPath string
	compiled        *SourceFile
	declaration     *SourceFile
	compiledHash    string
	declarationHash string

	// cached is set when the store already holds a merge for these hashes.
	cached *store.Merge
}

// MergeFile reassembles compiledPath with its declaration file. An empty
// declPath is resolved through the pairing rule.
func (e *Engine) MergeFile(ctx context.Context, compiledPath, declPath string) (*MergeResult, error) {
	p, err := e.prepare(ctx, compiledPath, declPath)
	if err != nil {
		return nil, err
	}
	if p.cached != nil {
		return e.cachedResult(p), nil
	}
	res, err := e.reassemble(p)
	if err != nil {
		return nil, err
	}
	return e.commit(p, res)
}

// MergeFiles merges every path with its paired declaration. Results are in
// path order. Errors on individual files are collected; the first is
// returned with the count once every file has been processed.
func (e *Engine) MergeFiles(ctx context.Context, paths []string) ([]*MergeResult, error) {
	if e.useParallel {
		return e.MergeFilesParallel(ctx, paths)
	}
	return e.mergeFilesSerial(ctx, paths)
}

func (e *Engine) mergeFilesSerial(ctx context.Context, paths []string) ([]*MergeResult, error) {
	var (
		results []*MergeResult
		errs    []error
	)
	for _, path := range paths {
		res, err := e.MergeFile(ctx, path, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("merge %s: %w", path, err))
			continue
		}
		results = append(results, res)
	}
	if len(errs) > 0 {
		return results, fmt.Errorf("merging had %d error(s): %w", len(errs), errs[0])
	}
	return results, nil
}

// MergeDirectory merges every compiled file under root that has a paired
// declaration file on disk. If root is inside a git repository, git
// ls-files is used to respect .gitignore; otherwise the tree is walked,
// skipping hidden directories, node_modules and vendor.
func (e *Engine) MergeDirectory(ctx context.Context, root string) ([]*MergeResult, error) {
	paths, err := e.gitListFiles(root)
	if err != nil {
		paths, err = e.walkListFiles(root)
		if err != nil {
			return nil, err
		}
	}
	return e.MergeFiles(ctx, e.mergeCandidates(ctx, paths))
}

// WriteResult writes res.Content to res.OutputPath, creating directories
// as needed.
func (e *Engine) WriteResult(res *MergeResult) error {
	if err := os.MkdirAll(filepath.Dir(res.OutputPath), 0o755); err != nil {
		return fmt.Errorf("tsreassemble: write %s: %w", res.OutputPath, err)
	}
	if err := os.WriteFile(res.OutputPath, []byte(res.Content), 0o644); err != nil {
		return fmt.Errorf("tsreassemble: write %s: %w", res.OutputPath, err)
	}
	return nil
}

// Files returns the stored record of every registered file, or of the
// files of one language when language is not empty.
func (e *Engine) Files(language string) ([]*File, error) {
	if language != "" {
		files, err := e.store.FilesByLanguage(language)
		if err != nil {
			return nil, fmt.Errorf("tsreassemble: %w", err)
		}
		return files, nil
	}
	names, err := e.service.FileNames()
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0, len(names))
	for _, name := range names {
		f, err := e.service.File(name)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Forget drops a file and every merge it took part in. It reports whether
// the file was registered.
func (e *Engine) Forget(path string) (bool, error) {
	v, err := e.service.Version(path)
	if err != nil {
		return false, err
	}
	if err := e.service.RemoveFile(path); err != nil {
		return false, err
	}
	if v > 0 {
		e.logger.Info("forgot file", "path", path, "version", v)
	}
	return v > 0, nil
}

// prepare loads both files, registering their current content, and looks
// up a cached merge for the pair. An empty declPath is resolved through the
// pairing rule.
func (e *Engine) prepare(ctx context.Context, compiledPath, declPath string) (*pendingMerge, error) {
	var (
		compiled, declaration *SourceFile
		err                   error
	)
	if declPath == "" {
		compiled, declaration, err = e.service.Pair(ctx, compiledPath)
		if err != nil {
			return nil, fmt.Errorf("tsreassemble: pair %s: %w", compiledPath, err)
		}
		declPath = declaration.FileName
	} else {
		if compiled, err = e.service.LoadFile(ctx, compiledPath); err != nil {
			return nil, fmt.Errorf("tsreassemble: %w", err)
		}
		if declaration, err = e.service.LoadFile(ctx, declPath); err != nil {
			return nil, fmt.Errorf("tsreassemble: %w", err)
		}
	}
	cf, err := e.service.File(compiledPath)
	if err != nil {
		return nil, fmt.Errorf("tsreassemble: %w", err)
	}
	df, err := e.service.File(declPath)
	if err != nil {
		return nil, fmt.Errorf("tsreassemble: %w", err)
	}

	p := &pendingMerge{
		compiledPath:    compiledPath,
		declarationPath: declPath,
		compiled:        compiled,
		declaration:     declaration,
		compiledHash:    cf.Hash,
		declarationHash: df.Hash,
	}
	p.cached, err = e.store.FreshMerge(compiledPath, declPath, cf.Hash, df.Hash)
	if err != nil {
		return nil, fmt.Errorf("tsreassemble: lookup merge %s: %w", compiledPath, err)
	}
	return p, nil
}

// reassemble runs the pure part of a merge. It touches no shared state and
// may run on any goroutine.
func (e *Engine) reassemble(p *pendingMerge) (*Result, error) {
	return e.reassembler.Reassemble(Options{Compiled: p.compiled, Declaration: p.declaration})
}

// commit records a fresh merge.
func (e *Engine) commit(p *pendingMerge, res *Result) (*MergeResult, error) {
	diags := make([]string, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		diags[i] = d.String()
	}
	err := e.store.PutMerge(&store.Merge{
		CompiledPath:    p.compiledPath,
		DeclarationPath: p.declarationPath,
		CompiledHash:    p.compiledHash,
		DeclarationHash: p.declarationHash,
		Output:          res.Content,
		Diagnostics:     diags,
		Statements:      res.Stats.Statements,
		Matched:         res.Stats.Matched,
		Unmatched:       res.Stats.Unmatched,
	})
	if err != nil {
		return nil, fmt.Errorf("tsreassemble: store merge %s: %w", p.compiledPath, err)
	}
	e.logger.Info("merged file",
		"compiled", p.compiledPath,
		"declaration", p.declarationPath,
		"matched", res.Stats.Matched,
		"diagnostics", len(diags),
	)
	return &MergeResult{
		CompiledPath:    p.compiledPath,
		DeclarationPath: p.declarationPath,
		OutputPath:      e.cfg.OutputPath(p.compiledPath),
		Content:         res.Content,
		Diagnostics:     diags,
		Stats:           res.Stats,
	}, nil
}

func (e *Engine) cachedResult(p *pendingMerge) *MergeResult {
	e.logger.Debug("merge unchanged", "compiled", p.compiledPath)
	return &MergeResult{
		CompiledPath:    p.compiledPath,
		DeclarationPath: p.declarationPath,
		OutputPath:      e.cfg.OutputPath(p.compiledPath),
		Content:         p.cached.Output,
		Diagnostics:     p.cached.Diagnostics,
		Stats: Stats{
			Statements: p.cached.Statements,
			Matched:    p.cached.Matched,
			Unmatched:  p.cached.Unmatched,
		},
		Cached: true,
	}
}

// mergeCandidates keeps the compiled, non-excluded files whose paired
// declaration exists on disk.
func (e *Engine) mergeCandidates(ctx context.Context, paths []string) []string {
	var out []string
	for _, path := range paths {
		lang, ok := parse.LanguageForFile(path)
		if !ok || lang != parse.JavaScript || e.service.IsExcluded(path) {
			continue
		}
		decl, err := e.service.DeclarationFor(ctx, path)
		if err != nil {
			if !errors.Is(err, pairing.ErrNoDeclaration) {
				e.logger.Warn("pairing failed", "path", path, "error", err)
			}
			continue
		}
		if _, err := os.Stat(decl); err != nil {
			continue
		}
		out = append(out, path)
	}
	return out
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root.
func (e *Engine) gitListFiles(root string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, filepath.Join(root, line))
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem, used when git is
// not available.
func (e *Engine) walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}
