package ragdex

import (
	"fmt"

	"github.com/mkondo/ragdex/internal/store"
)

// QueryBuilder provides read access over the Store.
type QueryBuilder struct {
	store *store.Store
}

// FunctionsByName returns all functions with the given name, across files
// and languages.
func (q *QueryBuilder) FunctionsByName(name string) ([]*Function, error) {
	fns, err := q.store.FunctionsByName(name)
	if err != nil {
		return nil, fmt.Errorf("functions by name: %w", err)
	}
	return fns, nil
}

// FunctionsByLanguage returns all functions extracted from files of the
// given language.
func (q *QueryBuilder) FunctionsByLanguage(language string) ([]*Function, error) {
	fns, err := q.store.FunctionsByLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("functions by language: %w", err)
	}
	return fns, nil
}

// FunctionsInFile returns the functions extracted from the file at path, in
// source order. A path that was never indexed yields a nil slice.
func (q *QueryBuilder) FunctionsInFile(path string) ([]*Function, error) {
	f, err := q.store.FileByPath(path)
	if err != nil {
		return nil, fmt.Errorf("functions in file: lookup: %w", err)
	}
	if f == nil {
		return nil, nil
	}
	fns, err := q.store.FunctionsByFile(f.ID)
	if err != nil {
		return nil, fmt.Errorf("functions in file: %w", err)
	}
	return fns, nil
}

// Files returns all indexed files ordered by path.
func (q *QueryBuilder) Files() ([]*File, error) {
	files, err := q.store.Files()
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	return files, nil
}

// Stats returns per-language file counts, function counts, and average
// complexity.
func (q *QueryBuilder) Stats() ([]*LanguageStat, error) {
	stats, err := q.store.LanguageStats()
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return stats, nil
}
