package store

import (
	"database/sql"
	"fmt"
	"time"
)

// PutFile records content for path. The version starts at 1 and is bumped
// only when the content hash differs from the stored one. changed reports
// whether anything was written.
func (s *Store) PutFile(path, language string, content []byte) (f *File, changed bool, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	hash := ContentHash(content)
	existing, err := scanFile(tx.QueryRow(
		"SELECT id, path, language, content, hash, version, updated_at FROM files WHERE path = ?", path,
	))
	if err != nil && err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("file by path: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		return existing, false, nil
	}

	f = &File{Path: path, Language: language, Content: content, Hash: hash, Version: 1, UpdatedAt: time.Now()}
	if existing == nil {
		res, err := tx.Exec(
			"INSERT INTO files (path, language, content, hash, version, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			f.Path, f.Language, f.Content, f.Hash, f.Version, f.UpdatedAt,
		)
		if err != nil {
			return nil, false, fmt.Errorf("insert file: %w", err)
		}
		if f.ID, err = res.LastInsertId(); err != nil {
			return nil, false, fmt.Errorf("last insert id: %w", err)
		}
	} else {
		f.ID = existing.ID
		f.Version = existing.Version + 1
		if _, err := tx.Exec(
			"UPDATE files SET language = ?, content = ?, hash = ?, version = ?, updated_at = ? WHERE id = ?",
			f.Language, f.Content, f.Hash, f.Version, f.UpdatedAt, f.ID,
		); err != nil {
			return nil, false, fmt.Errorf("update file: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit file: %w", err)
	}
	return f, true, nil
}

// FileByPath returns the stored file, or nil if path is unknown.
func (s *Store) FileByPath(path string) (*File, error) {
	f, err := scanFile(s.db.QueryRow(
		"SELECT id, path, language, content, hash, version, updated_at FROM files WHERE path = ?", path,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

// FilesByLanguage lists stored files of one language, ordered by path.
func (s *Store) FilesByLanguage(language string) ([]*File, error) {
	rows, err := s.db.Query(
		"SELECT id, path, language, content, hash, version, updated_at FROM files WHERE language = ? ORDER BY path",
		language,
	)
	if err != nil {
		return nil, fmt.Errorf("files by language: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteFile removes path and every merge that used it as either side.
// Deleting an unknown path is not an error.
func (s *Store) DeleteFile(path string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM merges WHERE compiled_path = ? OR declaration_path = ?",
		"DELETE FROM files WHERE path = ?",
	} {
		args := repeatArgs([]any{path}, countSubstring(q, "?"))
		if _, err := tx.Exec(q, args...); err != nil {
			return fmt.Errorf("delete file data: %w", err)
		}
	}
	return tx.Commit()
}

func scanFile(scanner interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	var updated sql.NullTime
	if err := scanner.Scan(&f.ID, &f.Path, &f.Language, &f.Content, &f.Hash, &f.Version, &updated); err != nil {
		return nil, err
	}
	f.UpdatedAt = updated.Time
	return f, nil
}

// Paths lists every stored path in order.
func (s *Store) Paths() ([]string, error) {
	rows, err := s.db.Query("SELECT path FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("file paths: %w", err)
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
