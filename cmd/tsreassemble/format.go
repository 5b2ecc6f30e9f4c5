package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputResult writes result to stdout in the selected format.
func outputResult(result CLIResult) error {
	return writeResult(os.Stdout, flagFormat, result)
}

func writeResult(w io.Writer, format string, result CLIResult) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	switch r := result.Results.(type) {
	case []CLIMerge:
		formatMergesText(w, r)
	case []CLIFile:
		formatFilesText(w, r)
	case []CLIForget:
		formatForgetText(w, r)
	default:
		fmt.Fprintf(w, "%v\n", r)
	}
	return nil
}

// outputError writes an error in the selected format and returns it so RunE
// reports failure.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

// formatMergesText formats CLIMerge results as aligned columns followed by
// any diagnostics.
func formatMergesText(w io.Writer, merges []CLIMerge) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPILED\tDECLARATION\tOUTPUT\tMATCHED\tUNMATCHED\tCACHED")
	for _, m := range merges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%t\n",
			m.Compiled, m.Declaration, m.Output, m.Matched, m.Unmatched, m.Cached)
	}
	tw.Flush()
	for _, m := range merges {
		for _, d := range m.Diagnostics {
			fmt.Fprintf(w, "%s: %s\n", m.Compiled, d)
		}
	}
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tLANGUAGE\tVERSION\tHASH")
	for _, f := range files {
		hash := f.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f.Path, f.Language, f.Version, hash)
	}
	tw.Flush()
}

// formatForgetText prints one line per forgotten path.
func formatForgetText(w io.Writer, forgotten []CLIForget) {
	for _, f := range forgotten {
		if f.Removed {
			fmt.Fprintf(w, "removed %s\n", f.Path)
		} else {
			fmt.Fprintf(w, "not registered %s\n", f.Path)
		}
	}
}
