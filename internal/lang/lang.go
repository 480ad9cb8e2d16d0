// Package lang implements tree-sitter based function extraction for the
// supported source languages.
package lang

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

// ErrSyntax is returned when tree-sitter reports an error node at the root
// of the parse tree. Callers are expected to log and skip the file.
var ErrSyntax = errors.New("syntax error")

// ErrEncoding is returned for files that are not valid UTF-8.
var ErrEncoding = errors.New("invalid utf-8")

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".go":   "go",
	".py":   "python",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".hh":   "cpp",
	".hxx":  "cpp",
}

// extractors is the language name → Extractor registry.
// Lazily initialized on first call via sync.Once.
var (
	extractors     map[string]Extractor
	extractorsOnce sync.Once
)

func initExtractors() {
	extractorsOnce.Do(func() {
		extractors = map[string]Extractor{
			"go":     goExtractor{},
			"python": pythonExtractor{},
			"rust":   rustExtractor{},
			"java":   javaExtractor{},
			"c":      cExtractor{},
			"cpp":    cppExtractor{},
		}
	})
}

// LanguageForFile returns the canonical language name for a file path based
// on its extension. Returns ("", false) if the extension is not recognized.
func LanguageForFile(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := extToLanguage[ext]
	return lang, ok
}

// ExtractorForLanguage returns the Extractor for a canonical language name.
// Returns (nil, false) if the language is not supported.
func ExtractorForLanguage(lang string) (Extractor, bool) {
	initExtractors()
	e, ok := extractors[lang]
	return e, ok
}

// ExtractorForFile returns the Extractor for a file path based on its
// extension.
func ExtractorForFile(path string) (Extractor, bool) {
	lang, ok := LanguageForFile(path)
	if !ok {
		return nil, false
	}
	return ExtractorForLanguage(lang)
}

// Languages returns the canonical names of all supported languages.
func Languages() []string {
	initExtractors()
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	return names
}
