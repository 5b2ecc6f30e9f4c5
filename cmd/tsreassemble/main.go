package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/tsreassemble"
	"github.com/jward/tsreassemble/internal/config"
)

var (
	flagDB      string
	flagFormat  string
	flagConfig  string
	flagPair    string
	flagExclude []string
	flagVerbose bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tsreassemble",
	Short:         "Restore TypeScript types to compiled JavaScript",
	Long:          "tsreassemble merges the type information of declaration files back into the JavaScript a TypeScript compiler emitted, producing TypeScript source.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .tsreassemble.db next to the config file)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: nearest "+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&flagPair, "pair", "", "Risor expression or .risor file choosing the declaration path")
	rootCmd.PersistentFlags().StringArrayVar(&flagExclude, "exclude", nil, "exclude paths matching this regular expression (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(dirCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(forgetCmd)
}

// loadConfig resolves the project config and applies flag overrides.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Resolve(flagConfig, dir)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	return cfg, nil
}

// applyOverrides lets flags take precedence over file values.
func applyOverrides(cfg *config.Config) {
	if flagDB != "" {
		cfg.DB = flagDB
	}
	if flagPair != "" {
		cfg.Pair = flagPair
	}
	cfg.Exclude = append(cfg.Exclude, flagExclude...)
}

func newLogger() *slog.Logger {
	if !flagVerbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openEngine creates an Engine for cfg.
func openEngine(cfg *config.Config) (*tsreassemble.Engine, error) {
	engine, err := tsreassemble.NewEngine(cfg.DB,
		tsreassemble.WithConfig(cfg),
		tsreassemble.WithEngineLogger(newLogger()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return engine, nil
}
