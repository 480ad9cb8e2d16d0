package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mkondo/ragdex"
)

var (
	flagName     string
	flagLanguage string
	flagFile     string
	flagLimit    int
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List indexed functions",
	Long:  "Lists extracted function records, filtered by --name, --language, or --file. Line numbers are 1-based.",
	RunE:  runFunctions,
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed files",
	RunE:  runFiles,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Per-language index statistics",
	RunE:  runStats,
}

func init() {
	functionsCmd.Flags().StringVar(&flagName, "name", "", "exact function name")
	functionsCmd.Flags().StringVar(&flagLanguage, "language", "", "language filter")
	functionsCmd.Flags().StringVar(&flagFile, "file", "", "file path filter")
	functionsCmd.Flags().IntVar(&flagLimit, "limit", 50, "maximum results (0 = unlimited)")
}

// openEngine opens the Engine against the existing database. Errors when
// the database is missing so query commands never create an empty index.
func openEngine() (*ragdex.Engine, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)
	dbPath := resolveDBPath(repoRoot)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'ragdex index' first)", dbPath)
	}

	return ragdex.New(dbPath)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer engine.Close()
	q := engine.Query()

	var fns []*ragdex.Function
	switch {
	case flagName != "":
		fns, err = q.FunctionsByName(flagName)
	case flagFile != "":
		abs, absErr := filepath.Abs(flagFile)
		if absErr != nil {
			return fmt.Errorf("resolving file path %q: %w", flagFile, absErr)
		}
		fns, err = q.FunctionsInFile(abs)
	case flagLanguage != "":
		fns, err = q.FunctionsByLanguage(flagLanguage)
	default:
		return fmt.Errorf("one of --name, --language, or --file is required")
	}
	if err != nil {
		return err
	}

	// Secondary filters compose with the primary lookup.
	if flagLanguage != "" && flagName != "" {
		filtered := fns[:0]
		for _, fn := range fns {
			if fn.Language == flagLanguage {
				filtered = append(filtered, fn)
			}
		}
		fns = filtered
	}
	if flagLimit > 0 && len(fns) > flagLimit {
		fns = fns[:flagLimit]
	}

	pathByFile, err := filePathIndex(q)
	if err != nil {
		return err
	}

	results := make([]CLIFunction, 0, len(fns))
	for _, fn := range fns {
		results = append(results, CLIFunction{
			ID:         fn.ID,
			Name:       fn.Name,
			Kind:       fn.Kind,
			Receiver:   fn.Receiver,
			Language:   fn.Language,
			File:       pathByFile[fn.FileID],
			StartLine:  fn.StartLine,
			EndLine:    fn.EndLine,
			Arguments:  fn.Arguments,
			ReturnType: fn.ReturnType,
			Modifiers:  fn.Modifiers,
			Complexity: fn.Complexity,
			LOC:        fn.LOC,
		})
	}

	return outputResult(CLIResult{Command: "functions", Results: results})
}

func runFiles(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	files, err := engine.Query().Files()
	if err != nil {
		return err
	}

	results := make([]CLIFile, 0, len(files))
	for _, f := range files {
		results = append(results, CLIFile{
			ID:       f.ID,
			Path:     f.Path,
			Language: f.Language,
			Lines:    f.LineCount,
		})
	}

	return outputResult(CLIResult{Command: "files", Results: results})
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Query().Stats()
	if err != nil {
		return err
	}

	results := make([]CLIStat, 0, len(stats))
	for _, s := range stats {
		results = append(results, CLIStat{
			Language:      s.Language,
			FileCount:     s.FileCount,
			FunctionCount: s.FunctionCount,
			AvgComplexity: s.AvgComplexity,
		})
	}

	return outputResult(CLIResult{Command: "stats", Results: results})
}

// filePathIndex maps file IDs to paths for display.
func filePathIndex(q *ragdex.QueryBuilder) (map[int64]string, error) {
	files, err := q.Files()
	if err != nil {
		return nil, err
	}
	index := make(map[int64]string, len(files))
	for _, f := range files {
		index[f.ID] = f.Path
	}
	return index, nil
}
