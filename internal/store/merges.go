package store

import (
	"database/sql"
	"fmt"
	"time"
)

// PutMerge stores m as the cached result for its compiled path, replacing
// any earlier one.
func (s *Store) PutMerge(m *Merge) error {
	if m.MergedAt.IsZero() {
		m.MergedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO merges (compiled_path, declaration_path, compiled_hash, declaration_hash, output, diagnostics,
		   statements, matched, unmatched, merged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(compiled_path) DO UPDATE SET
		   declaration_path = excluded.declaration_path,
		   compiled_hash = excluded.compiled_hash,
		   declaration_hash = excluded.declaration_hash,
		   output = excluded.output,
		   diagnostics = excluded.diagnostics,
		   statements = excluded.statements,
		   matched = excluded.matched,
		   unmatched = excluded.unmatched,
		   merged_at = excluded.merged_at`,
		m.CompiledPath, m.DeclarationPath, m.CompiledHash, m.DeclarationHash,
		m.Output, marshalDiagnostics(m.Diagnostics), m.Statements, m.Matched, m.Unmatched, m.MergedAt,
	)
	if err != nil {
		return fmt.Errorf("put merge: %w", err)
	}
	return nil
}

// MergeByPath returns the cached merge for a compiled path, or nil.
func (s *Store) MergeByPath(compiledPath string) (*Merge, error) {
	m := &Merge{}
	var diags sql.NullString
	var merged sql.NullTime
	err := s.db.QueryRow(
		`SELECT id, compiled_path, declaration_path, compiled_hash, declaration_hash, output, diagnostics,
		   statements, matched, unmatched, merged_at
		 FROM merges WHERE compiled_path = ?`, compiledPath,
	).Scan(&m.ID, &m.CompiledPath, &m.DeclarationPath, &m.CompiledHash, &m.DeclarationHash, &m.Output, &diags,
		&m.Statements, &m.Matched, &m.Unmatched, &merged)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("merge by path: %w", err)
	}
	m.Diagnostics = unmarshalDiagnostics(diags.String)
	m.MergedAt = merged.Time
	return m, nil
}

// FreshMerge returns the cached merge for compiledPath if it was produced
// from exactly the given declaration path and content hashes.
func (s *Store) FreshMerge(compiledPath, declarationPath, compiledHash, declarationHash string) (*Merge, error) {
	m, err := s.MergeByPath(compiledPath)
	if err != nil || m == nil {
		return nil, err
	}
	if m.DeclarationPath != declarationPath || m.CompiledHash != compiledHash || m.DeclarationHash != declarationHash {
		return nil, nil
	}
	return m, nil
}

// MergeCount returns the number of cached merges.
func (s *Store) MergeCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM merges").Scan(&n); err != nil {
		return 0, fmt.Errorf("merge count: %w", err)
	}
	return n, nil
}
