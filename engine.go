package ragdex

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mkondo/ragdex/internal/lang"
	"github.com/mkondo/ragdex/internal/scanner"
	"github.com/mkondo/ragdex/internal/store"
)

// Engine orchestrates the ragdex pipeline: file discovery, change detection,
// tree-sitter extraction, and storage.
type Engine struct {
	store      *store.Store
	logger     *zap.Logger
	languages  map[string]bool // nil means all languages
	ignoreFile string

	// useParallel enables the parallel extraction pipeline.
	useParallel bool
	// numWorkers caps the extraction worker pool; 0 means NumCPU.
	numWorkers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages restricts which languages the Engine will process.
func WithLanguages(languages ...string) Option {
	return func(e *Engine) {
		e.languages = make(map[string]bool, len(languages))
		for _, l := range languages {
			e.languages[l] = true
		}
	}
}

// WithParallel controls parallel extraction. When true (default), IndexFiles
// uses a worker pool for parsing, with batches committed serially to SQLite.
// Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// WithWorkers caps the parallel extraction worker pool. Zero means NumCPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.numWorkers = n
	}
}

// WithIgnoreFile sets the gitignore-syntax exclusion file consulted by
// IndexDirectory. Empty disables exclusions.
func WithIgnoreFile(name string) Option {
	return func(e *Engine) {
		e.ignoreFile = name
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine backed by a SQLite database at dbPath.
func New(dbPath string, opts ...Option) (*Engine, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("ragdex: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("ragdex: migrate: %w", err)
	}

	e := &Engine{
		store:       s,
		logger:      zap.NewNop(),
		ignoreFile:  scanner.DefaultIgnoreFile,
		useParallel: true, // default to parallel extraction
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the underlying Store for direct access.
func (e *Engine) Store() *Store {
	return e.store
}

// Query returns a new QueryBuilder wrapping the Store.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// IndexDirectory scans root and indexes all eligible files: supported
// language, not excluded by the ignore file, not binary.
func (e *Engine) IndexDirectory(ctx context.Context, root string) error {
	var scanOpts []scanner.Option
	scanOpts = append(scanOpts, scanner.WithIgnoreFile(e.ignoreFile))
	if e.languages != nil {
		langs := make([]string, 0, len(e.languages))
		for l := range e.languages {
			langs = append(langs, l)
		}
		scanOpts = append(scanOpts, scanner.WithLanguages(langs...))
	}

	sc, err := scanner.New(root, scanOpts...)
	if err != nil {
		return fmt.Errorf("ragdex: %w", err)
	}
	paths, err := sc.Scan()
	if err != nil {
		return fmt.Errorf("ragdex: %w", err)
	}
	e.logger.Debug("scan complete", zap.String("root", root), zap.Int("files", len(paths)))

	return e.IndexFiles(ctx, paths)
}

// IndexFiles indexes the given file paths. For each file:
//  1. Detect language from extension; skip unsupported or filtered-out.
//  2. Skip unchanged files (same content hash).
//  3. Delete stale data, insert the new file record.
//  4. Extract function records and store them.
//
// Files with syntax or encoding problems are logged and produce zero
// records; other per-file errors are collected and reported at the end
// without aborting the batch.
func (e *Engine) IndexFiles(ctx context.Context, paths []string) error {
	if e.useParallel {
		return e.indexFilesParallel(ctx, paths)
	}
	return e.indexFilesSerial(ctx, paths)
}

func (e *Engine) indexFilesSerial(ctx context.Context, paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := e.indexFile(ctx, path); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("indexing had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

func (e *Engine) indexFile(ctx context.Context, path string) error {
	prep, skip, err := e.prepareFile(path)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	fns, err := e.extract(ctx, prep)
	if err != nil {
		return err
	}
	for i := range fns {
		fns[i].FileID = prep.fileID
		if _, err := e.store.InsertFunction(&fns[i]); err != nil {
			return fmt.Errorf("insert function %q: %w", fns[i].Name, err)
		}
	}
	return nil
}

// preparedFile holds the Phase A output for one file: a fresh file record
// and the content the extractor will parse.
type preparedFile struct {
	path     string
	language string
	fileID   int64
	src      []byte
}

// prepareFile does the serial bookkeeping for a single file: language
// detection, hash-based change detection, stale-data cleanup, and the new
// file record. Returns skip=true for unsupported, filtered, or unchanged
// files.
func (e *Engine) prepareFile(path string) (preparedFile, bool, error) {
	language, ok := lang.LanguageForFile(path)
	if !ok {
		return preparedFile{}, true, nil // unsupported extension
	}
	if e.languages != nil && !e.languages[language] {
		return preparedFile{}, true, nil // filtered out
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return preparedFile{}, false, fmt.Errorf("read file: %w", err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(content))

	existing, err := e.store.FileByPath(path)
	if err != nil {
		return preparedFile{}, false, fmt.Errorf("lookup file: %w", err)
	}
	if existing != nil && existing.Hash == hash {
		return preparedFile{}, true, nil // unchanged
	}
	if existing != nil {
		if err := e.store.DeleteFileData(existing.ID); err != nil {
			return preparedFile{}, false, fmt.Errorf("delete old data: %w", err)
		}
	}

	lineCount := bytes.Count(content, []byte{'\n'}) + 1
	fileID, err := e.store.InsertFile(&store.File{
		Path:        path,
		Language:    language,
		Hash:        hash,
		LineCount:   lineCount,
		LastIndexed: time.Now(),
	})
	if err != nil {
		return preparedFile{}, false, fmt.Errorf("insert file: %w", err)
	}

	return preparedFile{path: path, language: language, fileID: fileID, src: content}, false, nil
}

// extract runs the language extractor. Syntax and encoding problems are
// logged as warnings and yield zero records, matching the skip-and-continue
// contract of IndexFiles.
func (e *Engine) extract(ctx context.Context, prep preparedFile) ([]store.Function, error) {
	extractor, ok := lang.ExtractorForLanguage(prep.language)
	if !ok {
		return nil, nil
	}
	fns, err := extractor.Extract(ctx, prep.path, prep.src)
	switch {
	case errors.Is(err, lang.ErrSyntax):
		e.logger.Warn("syntax error, skipping file", zap.String("path", prep.path))
		return nil, nil
	case errors.Is(err, lang.ErrEncoding):
		e.logger.Warn("encoding error, skipping file", zap.String("path", prep.path))
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("extract: %w", err)
	}
	e.logger.Debug("extracted functions",
		zap.String("path", prep.path),
		zap.Int("count", len(fns)))
	return fns, nil
}

// DeleteFile removes a file and its functions from the index. Used by the
// watch pipeline when a file disappears. Unknown paths are a no-op.
func (e *Engine) DeleteFile(path string) error {
	existing, err := e.store.FileByPath(path)
	if err != nil {
		return fmt.Errorf("ragdex: lookup file: %w", err)
	}
	if existing == nil {
		return nil
	}
	if err := e.store.DeleteFileData(existing.ID); err != nil {
		return fmt.Errorf("ragdex: delete file data: %w", err)
	}
	e.logger.Debug("removed file from index", zap.String("path", path))
	return nil
}
