package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkondo/ragdex"
	"github.com/mkondo/ragdex/internal/config"
	"github.com/mkondo/ragdex/internal/logging"
)

var (
	flagDB     string
	flagFormat string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ragdex",
	Short:         "Function-level source indexer for RAG pipelines",
	Long:          "ragdex parses source files with tree-sitter, extracts one record per function, and writes results to a SQLite database ready for chunk export.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .ragdex/index.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
}

var (
	flagForce      bool
	flagLanguages  string
	flagSerial     bool
	flagIgnoreFile string
	flagWorkers    int
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Index a source tree",
	Long:  "Scans the tree, parses source files with tree-sitter, and writes one record per function to the SQLite database. Unchanged files are skipped.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&flagForce, "force", false, "delete database and reindex from scratch")
	indexCmd.Flags().StringVar(&flagLanguages, "languages", "", "comma-separated language filter (e.g. go,python)")
	indexCmd.Flags().BoolVar(&flagSerial, "serial", false, "disable the parallel extraction pipeline")
	indexCmd.Flags().StringVar(&flagIgnoreFile, "ignore-file", "", "gitignore-syntax exclusion file (default .ragignore)")
	indexCmd.Flags().IntVar(&flagWorkers, "workers", 0, "extraction worker count (0 = NumCPU)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	targetDir, err := resolveTargetDir(args, cfg)
	if err != nil {
		return err
	}

	repoRoot := findRepoRoot(targetDir)
	dbPath := resolveDBPath(repoRoot)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}

	// Handle --force: delete the DB file entirely.
	if flagForce {
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing database for --force: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared database: %s\n", dbPath)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine, err := newEngine(dbPath, cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.IndexDirectory(context.Background(), targetDir); err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %s in %s\n", targetDir, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Database: %s\n", dbPath)

	return nil
}

// loadConfig loads the --config file when given, otherwise returns nil.
func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return nil, nil
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildLogger builds the zap logger from config, or an info-level stderr
// logger when no config is given.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, file := "info", ""
	if cfg != nil {
		level, file = cfg.Logging.Level, cfg.Logging.File
	}
	logger, err := logging.New(level, file)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// newEngine assembles Engine options from flags and config. Flags win over
// config values.
func newEngine(dbPath string, cfg *config.Config, logger *zap.Logger) (*ragdex.Engine, error) {
	opts := []ragdex.Option{ragdex.WithLogger(logger)}

	languages := flagLanguages
	if languages == "" && cfg != nil && len(cfg.Processing.Languages) > 0 {
		languages = strings.Join(cfg.Processing.Languages, ",")
	}
	if languages != "" {
		langs := strings.Split(languages, ",")
		for i := range langs {
			langs[i] = strings.TrimSpace(langs[i])
		}
		opts = append(opts, ragdex.WithLanguages(langs...))
	}

	if flagSerial {
		opts = append(opts, ragdex.WithParallel(false))
	}

	workers := flagWorkers
	if workers == 0 && cfg != nil {
		workers = cfg.Processing.ParallelWorkers
	}
	if workers > 0 {
		opts = append(opts, ragdex.WithWorkers(workers))
	}

	ignoreFile := flagIgnoreFile
	if ignoreFile == "" && cfg != nil {
		ignoreFile = cfg.Input.IgnoreFile
	}
	if ignoreFile != "" {
		opts = append(opts, ragdex.WithIgnoreFile(ignoreFile))
	}

	engine, err := ragdex.New(dbPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return engine, nil
}

// resolveTargetDir returns the absolute path of the directory to index:
// the positional argument, then the config's source_dir, then cwd.
func resolveTargetDir(args []string, cfg *config.Config) (string, error) {
	dir := "."
	if cfg != nil && cfg.Input.SourceDir != "" {
		dir = cfg.Input.SourceDir
	}
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

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath returns the database path from the --db flag or the default.
func resolveDBPath(repoRoot string) string {
	if flagDB != "" {
		if filepath.IsAbs(flagDB) {
			return flagDB
		}
		return filepath.Join(repoRoot, flagDB)
	}
	return filepath.Join(repoRoot, ".ragdex", "index.db")
}
