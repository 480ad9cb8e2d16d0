package ragdex

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/mkondo/ragdex/internal/store"
)

// workItem holds everything a parallel extraction worker needs.
type workItem struct {
	prep  preparedFile
	batch *store.BatchedStore
}

// indexFilesParallel indexes files using a three-phase pipeline:
//
//	Phase A (serial):  Hash check, delete old data, prepare file records.
//	Phase B (parallel): Parse and extract via worker pool into BatchedStores.
//	Phase C (serial):  Commit batches to SQLite.
func (e *Engine) indexFilesParallel(ctx context.Context, paths []string) error {
	// ---- Phase A: Serial file preparation ----
	var items []workItem
	for _, path := range paths {
		prep, skip, err := e.prepareFile(path)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", path, err)
		}
		if skip {
			continue
		}
		items = append(items, workItem{prep: prep, batch: store.NewBatchedStore()})
	}

	if len(items) == 0 {
		return nil
	}

	// ---- Phase B: Parallel extraction ----
	numWorkers := e.numWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(items) {
		numWorkers = len(items)
	}

	workCh := make(chan workItem, len(items))
	for _, item := range items {
		workCh <- item
	}
	close(workCh)

	type result struct {
		item workItem
		err  error
	}
	resultCh := make(chan result, len(items))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each extraction builds its own tree-sitter parser, so
			// workers never share parser state.
			for item := range workCh {
				err := e.extractToBatch(ctx, item)
				resultCh <- result{item: item, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// ---- Phase C: Serial commit ----
	var errs []error
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("extract %s: %w", res.item.prep.path, res.err))
			continue
		}
		if err := e.store.CommitBatch(res.item.batch); err != nil {
			errs = append(errs, fmt.Errorf("commit %s: %w", res.item.prep.path, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("parallel indexing had %d error(s): %w", len(errs), errs[0])
	}
	return nil
}

// extractToBatch runs extraction for a single file, buffering records in the
// item's BatchedStore for the serial commit phase.
func (e *Engine) extractToBatch(ctx context.Context, item workItem) error {
	fns, err := e.extract(ctx, item.prep)
	if err != nil {
		return err
	}
	for i := range fns {
		fns[i].FileID = item.prep.fileID
		if _, err := item.batch.InsertFunction(&fns[i]); err != nil {
			return fmt.Errorf("buffer function %q: %w", fns[i].Name, err)
		}
	}
	e.logger.Debug("buffered batch",
		zap.String("path", item.prep.path),
		zap.Int("functions", len(fns)))
	return nil
}
