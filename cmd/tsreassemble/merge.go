package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/tsreassemble"
)

var flagOutput string

var mergeCmd = &cobra.Command{
	Use:   "merge <compiled.js> [declaration.d.ts]",
	Short: "Merge one compiled file with its declaration file",
	Long:  "Parses a compiled file and its declaration file, restores the declared types and writes the TypeScript result. Without a declaration argument the pairing rule picks one.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", `output file, or "-" for stdout (default: compiled path with the configured extension)`)
}

func runMerge(cmd *cobra.Command, args []string) error {
	compiled, err := filepath.Abs(args[0])
	if err != nil {
		return outputError("merge", err)
	}
	var declaration string
	if len(args) > 1 {
		if declaration, err = filepath.Abs(args[1]); err != nil {
			return outputError("merge", err)
		}
	}

	cfg, err := loadConfig(filepath.Dir(compiled))
	if err != nil {
		return outputError("merge", err)
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return outputError("merge", err)
	}
	defer engine.Close()

	res, err := engine.MergeFile(context.Background(), compiled, declaration)
	if err != nil {
		return outputError("merge", err)
	}
	if flagOutput == "-" {
		_, err := fmt.Fprint(os.Stdout, res.Content)
		return err
	}
	if flagOutput != "" {
		res.OutputPath = flagOutput
	}
	if err := engine.WriteResult(res); err != nil {
		return outputError("merge", err)
	}
	return outputResult(CLIResult{Command: "merge", Results: []CLIMerge{mergeToCLI(res)}})
}

var flagOutDir string

var dirCmd = &cobra.Command{
	Use:   "dir [path]",
	Short: "Merge every compiled file under a directory",
	Long:  "Finds compiled files with a paired declaration file under path (git ls-files when available), merges them in parallel and writes the results.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDir,
}

func init() {
	dirCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "directory receiving merged files (default: next to each compiled file)")
}

func runDir(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return outputError("dir", err)
	}
	cfg, err := loadConfig(targetDir)
	if err != nil {
		return outputError("dir", err)
	}
	if flagOutDir != "" {
		if cfg.OutDir, err = filepath.Abs(flagOutDir); err != nil {
			return outputError("dir", err)
		}
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return outputError("dir", err)
	}
	defer engine.Close()

	results, mergeErr := engine.MergeDirectory(context.Background(), targetDir)
	out := make([]CLIMerge, 0, len(results))
	for _, res := range results {
		if err := engine.WriteResult(res); err != nil {
			return outputError("dir", err)
		}
		out = append(out, mergeToCLI(res))
	}
	if mergeErr != nil {
		return outputError("dir", mergeErr)
	}

	cached := 0
	for _, res := range results {
		if res.Cached {
			cached++
		}
	}
	stored, err := engine.Store().MergeCount()
	if err != nil {
		return outputError("dir", err)
	}
	fmt.Fprintf(os.Stderr, "Merged %d file(s) under %s in %s (%d cached, %d in database)\n",
		len(results), targetDir, time.Since(start).Round(time.Millisecond), cached, stored)
	return outputResult(CLIResult{Command: "dir", Results: out})
}

var flagLanguage string

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the files recorded in the database",
	Args:  cobra.NoArgs,
	RunE:  runFiles,
}

func init() {
	filesCmd.Flags().StringVar(&flagLanguage, "language", "", "only list files of this language (javascript|typescript|tsx)")
}

func runFiles(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return outputError("files", err)
	}
	cfg, err := loadConfig(wd)
	if err != nil {
		return outputError("files", err)
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return outputError("files", err)
	}
	defer engine.Close()

	files, err := engine.Files(flagLanguage)
	if err != nil {
		return outputError("files", err)
	}
	out := make([]CLIFile, 0, len(files))
	for _, f := range files {
		out = append(out, fileToCLI(f))
	}
	return outputResult(CLIResult{Command: "files", Results: out})
}

var forgetCmd = &cobra.Command{
	Use:   "forget <path>...",
	Short: "Remove files and their cached merges from the database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runForget,
}

func runForget(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return outputError("forget", err)
	}
	cfg, err := loadConfig(wd)
	if err != nil {
		return outputError("forget", err)
	}
	engine, err := openEngine(cfg)
	if err != nil {
		return outputError("forget", err)
	}
	defer engine.Close()

	out := make([]CLIForget, 0, len(args))
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return outputError("forget", err)
		}
		known, err := engine.Forget(path)
		if err != nil {
			return outputError("forget", err)
		}
		out = append(out, CLIForget{Path: path, Removed: known})
	}
	return outputResult(CLIResult{Command: "forget", Results: out})
}

// resolveTargetDir returns the absolute path of the directory to merge.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}

func mergeToCLI(res *tsreassemble.MergeResult) CLIMerge {
	return CLIMerge{
		Compiled:    res.CompiledPath,
		Declaration: res.DeclarationPath,
		Output:      res.OutputPath,
		Cached:      res.Cached,
		Matched:     res.Stats.Matched,
		Unmatched:   res.Stats.Unmatched,
		Diagnostics: res.Diagnostics,
	}
}

func fileToCLI(f *tsreassemble.File) CLIFile {
	return CLIFile{
		Path:     f.Path,
		Language: f.Language,
		Version:  f.Version,
		Hash:     f.Hash,
	}
}
