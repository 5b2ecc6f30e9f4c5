package store

import (
	"encoding/json"
	"strings"
)

// repeatArgs repeats args n times (for queries that bind one value to
// several placeholders).
func repeatArgs(args []any, n int) []any {
	result := make([]any, 0, len(args)*n)
	for range n {
		result = append(result, args...)
	}
	return result
}

// countSubstring counts non-overlapping occurrences of substr in s.
func countSubstring(s, substr string) int {
	return strings.Count(s, substr)
}

// marshalDiagnostics converts []string to JSON text for storage.
func marshalDiagnostics(diags []string) string {
	if len(diags) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(diags)
	return string(b)
}

// unmarshalDiagnostics converts JSON text back to []string.
func unmarshalDiagnostics(s string) []string {
	if s == "" || s == "null" {
		return nil
	}
	var diags []string
	_ = json.Unmarshal([]byte(s), &diags)
	return diags
}
