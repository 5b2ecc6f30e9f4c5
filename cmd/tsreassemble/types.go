package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIMerge is a JSON-friendly merge result.
type CLIMerge struct {
	Compiled    string   `json:"compiled"`
	Declaration string   `json:"declaration"`
	Output      string   `json:"output"`
	Cached      bool     `json:"cached"`
	Matched     int      `json:"matched"`
	Unmatched   int      `json:"unmatched"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// CLIFile is a JSON-friendly file record.
type CLIFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Version  int    `json:"version"`
	Hash     string `json:"hash"`
}

// CLIForget reports whether a path was registered before it was removed.
type CLIForget struct {
	Path    string `json:"path"`
	Removed bool   `json:"removed"`
}
