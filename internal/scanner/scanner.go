// Package scanner discovers source files eligible for indexing.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/mkondo/ragdex/internal/lang"
)

// DefaultIgnoreFile is the gitignore-syntax exclusion file read from the
// root of the scanned tree.
const DefaultIgnoreFile = ".ragignore"

// skipDirs lists directories that are always excluded from scanning.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"target":       true,
}

// SkipDirName reports whether a directory name is always excluded,
// regardless of ignore-file patterns. Hidden directories are excluded.
func SkipDirName(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// Scanner walks a source tree and returns the files to index: supported
// language, not ignored, not binary.
type Scanner struct {
	root       string
	languages  map[string]bool // nil means all languages
	ignoreFile string
	matcher    *ignore.GitIgnore
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLanguages restricts scanning to the given languages.
func WithLanguages(languages ...string) Option {
	return func(s *Scanner) {
		s.languages = make(map[string]bool, len(languages))
		for _, l := range languages {
			s.languages[l] = true
		}
	}
}

// WithIgnoreFile overrides the name of the exclusion file. An empty name
// disables exclusion patterns entirely.
func WithIgnoreFile(name string) Option {
	return func(s *Scanner) {
		s.ignoreFile = name
	}
}

// New creates a Scanner rooted at root. The ignore file is loaded once at
// construction; a missing file means no exclusions.
func New(root string, opts ...Option) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: not a directory", root)
	}

	s := &Scanner{root: root, ignoreFile: DefaultIgnoreFile}
	for _, opt := range opts {
		opt(s)
	}

	if s.ignoreFile != "" {
		matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, s.ignoreFile))
		if err == nil {
			s.matcher = matcher
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read ignore file: %w", err)
		}
	}

	return s, nil
}

// Scan walks the tree and returns absolute paths of files to index.
func (s *Scanner) Scan() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if path == s.root {
				return nil
			}
			if SkipDirName(d.Name()) {
				return filepath.SkipDir
			}
			if s.ignored(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.ignored(rel) {
			return nil
		}
		language, ok := lang.LanguageForFile(path)
		if !ok {
			return nil
		}
		if s.languages != nil && !s.languages[language] {
			return nil
		}
		if isBinary(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}
	return paths, nil
}

func (s *Scanner) ignored(rel string) bool {
	if s.matcher == nil {
		return false
	}
	return s.matcher.MatchesPath(filepath.ToSlash(rel))
}

// isBinary reports whether the file contains a NUL byte within its first
// 8 KiB. Unreadable files are treated as binary.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, 8192)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
