package store

import "time"

// File is a registered source file and its current content version.
type File struct {
	ID        int64
	Path      string
	Language  string
	Content   []byte
	Hash      string
	Version   int
	UpdatedAt time.Time
}

// Merge is a cached reassembly result. It is fresh while both input hashes
// still match the stored files.
type Merge struct {
	ID              int64
	CompiledPath    string
	DeclarationPath string
	CompiledHash    string
	DeclarationHash string
	Output          string
	Diagnostics     []string
	Statements      int
	Matched         int
	Unmatched       int
	MergedAt        time.Time
}
