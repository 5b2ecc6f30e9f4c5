// Package langservice keeps a versioned registry of source files and hands
// out their parsed syntax trees. It pairs compiled files with their
// declaration files for reassembly.
package langservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/pairing"
	"github.com/jward/tsreassemble/internal/parse"
	"github.com/jward/tsreassemble/internal/store"
)

var (
	// ErrNotFound is returned for a path that was never added.
	ErrNotFound = errors.New("file not found")
	// ErrExcluded is returned when adding a path that matches an exclusion
	// pattern.
	ErrExcluded = errors.New("file excluded")
)

// patternTimeout bounds a single exclusion match.
const patternTimeout = time.Second

// Service is safe for concurrent use. Trees it returns are shared between
// callers and must be treated as read-only.
type Service struct {
	store  *store.Store
	parser *parse.Parser
	rule   pairing.Rule
	logger *slog.Logger

	mu       sync.RWMutex
	excluded []*regexp2.Regexp
	trees    map[string]parsedFile
}

type parsedFile struct {
	version int
	hash    string
	file    *ast.SourceFile
}

// Option configures a Service.
type Option func(*Service)

// WithParser sets the parser used for added files.
func WithParser(p *parse.Parser) Option {
	return func(s *Service) { s.parser = p }
}

// WithPairing sets the rule that maps compiled paths to declaration paths.
func WithPairing(r pairing.Rule) Option {
	return func(s *Service) { s.rule = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Service backed by st.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		rule:   pairing.Default{},
		logger: slog.New(slog.DiscardHandler),
		trees:  make(map[string]parsedFile),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = parse.New(parse.WithLogger(s.logger))
	}
	return s
}

// ExcludeFiles adds exclusion patterns written in ECMAScript regular
// expression syntax. Either every pattern is added or none is.
func (s *Service) ExcludeFiles(patterns ...string) error {
	compiled := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp2.Compile(p, regexp2.ECMAScript)
		if err != nil {
			return fmt.Errorf("langservice: exclude pattern %q: %w", p, err)
		}
		re.MatchTimeout = patternTimeout
		compiled = append(compiled, re)
	}
	s.mu.Lock()
	s.excluded = append(s.excluded, compiled...)
	s.mu.Unlock()
	return nil
}

// IsExcluded reports whether path matches any exclusion pattern.
func (s *Service) IsExcluded(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, re := range s.excluded {
		ok, err := re.MatchString(path)
		if err != nil {
			s.logger.Warn("exclusion match failed", "path", path, "pattern", re.String(), "err", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// AddFile registers content for path and returns its tree. The version is
// bumped only when the content changed.
func (s *Service) AddFile(ctx context.Context, path string, content []byte) (*ast.SourceFile, error) {
	if s.IsExcluded(path) {
		return nil, fmt.Errorf("langservice: %s: %w", path, ErrExcluded)
	}
	lang, ok := parse.LanguageForFile(path)
	if !ok {
		return nil, fmt.Errorf("langservice: %s: %w", path, parse.ErrUnknownLanguage)
	}
	f, changed, err := s.store.PutFile(path, lang, content)
	if err != nil {
		return nil, fmt.Errorf("langservice: add %s: %w", path, err)
	}
	if changed {
		s.logger.Debug("file updated", "path", path, "version", f.Version)
	}
	return s.tree(ctx, f)
}

// LoadFile reads path from disk and adds it.
func (s *Service) LoadFile(ctx context.Context, path string) (*ast.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("langservice: load %s: %w", path, err)
	}
	return s.AddFile(ctx, path, content)
}

// GetFile returns the tree of a previously added file.
func (s *Service) GetFile(ctx context.Context, path string) (*ast.SourceFile, error) {
	f, err := s.File(path)
	if err != nil {
		return nil, err
	}
	return s.tree(ctx, f)
}

// File returns the stored record for path.
func (s *Service) File(path string) (*store.File, error) {
	f, err := s.store.FileByPath(path)
	if err != nil {
		return nil, fmt.Errorf("langservice: get %s: %w", path, err)
	}
	if f == nil {
		return nil, fmt.Errorf("langservice: %s: %w", path, ErrNotFound)
	}
	return f, nil
}

// RemoveFile forgets path. Removing an unknown path is not an error.
func (s *Service) RemoveFile(path string) error {
	if err := s.store.DeleteFile(path); err != nil {
		return fmt.Errorf("langservice: remove %s: %w", path, err)
	}
	s.mu.Lock()
	delete(s.trees, path)
	s.mu.Unlock()
	return nil
}

// Version returns the content version of path, or 0 if it was never added.
func (s *Service) Version(path string) (int, error) {
	f, err := s.store.FileByPath(path)
	if err != nil {
		return 0, fmt.Errorf("langservice: version %s: %w", path, err)
	}
	if f == nil {
		return 0, nil
	}
	return f.Version, nil
}

// FileNames lists every registered path.
func (s *Service) FileNames() ([]string, error) {
	paths, err := s.store.Paths()
	if err != nil {
		return nil, fmt.Errorf("langservice: file names: %w", err)
	}
	return paths, nil
}

// Pair loads a compiled file and the declaration file chosen for it by the
// pairing rule, registering the current content of both.
func (s *Service) Pair(ctx context.Context, compiledPath string) (compiled, declaration *ast.SourceFile, err error) {
	declPath, err := s.rule.DeclarationFor(ctx, compiledPath)
	if err != nil {
		return nil, nil, err
	}
	if compiled, err = s.LoadFile(ctx, compiledPath); err != nil {
		return nil, nil, err
	}
	if declaration, err = s.LoadFile(ctx, declPath); err != nil {
		return nil, nil, err
	}
	return compiled, declaration, nil
}

// DeclarationFor exposes the pairing rule.
func (s *Service) DeclarationFor(ctx context.Context, compiledPath string) (string, error) {
	return s.rule.DeclarationFor(ctx, compiledPath)
}

// tree returns the parsed tree for f, reusing the cached one while the
// version and hash are unchanged.
func (s *Service) tree(ctx context.Context, f *store.File) (*ast.SourceFile, error) {
	s.mu.RLock()
	cached, ok := s.trees[f.Path]
	s.mu.RUnlock()
	if ok && cached.version == f.Version && cached.hash == f.Hash {
		return cached.file, nil
	}

	file, err := s.parser.ParseLanguage(ctx, f.Language, f.Path, f.Content)
	if err != nil {
		return nil, fmt.Errorf("langservice: %w", err)
	}
	s.mu.Lock()
	s.trees[f.Path] = parsedFile{version: f.Version, hash: f.Hash, file: file}
	s.mu.Unlock()
	return file, nil
}
