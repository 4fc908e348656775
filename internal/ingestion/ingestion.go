// Package ingestion loads the asset catalog from semicolon separated files.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/portfoli/internal/logger"
	"github.com/guttosm/portfoli/internal/storage"
)

const (
	fileExt          = ".csv"
	defaultBatchSize = 500
	maxWorkers       = 8
)

// Options tunes ProcessDirectory. Zero values pick the defaults.
type Options struct {
	Workers   int
	BatchSize int
}

// Summary totals one run.
type Summary struct {
	Files    int
	Rows     int
	Inserted int
	Skipped  int
}

func (s *Summary) add(f FileSummary) {
	s.Files++
	s.Rows += f.Rows
	s.Inserted += f.Inserted
	s.Skipped += f.Skipped
}

// ProcessDirectory loads every *.csv file in dir into the catalog.
//
//   - dir:  directory containing the catalog files.
//   - repo: asset repository; duplicates already in the catalog are skipped by AddBatch.
//
// Behavior:
//   - Files are processed concurrently, at most opts.Workers at a time
//     (default min(NumCPU, 8)).
//   - A malformed row is logged and skipped; a malformed header or an I/O or
//     storage failure fails that file, cancels the rest and is returned.
//   - An empty directory is an error, so a wrong path does not pass silently.
func ProcessDirectory(ctx context.Context, dir string, repo storage.AssetRepository, opts Options) (Summary, error) {
	log := logger.Component("ingestion")

	files, err := catalogFiles(dir)
	if err != nil {
		return Summary{}, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	batch := opts.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	log.Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", workers).Msg("ingestion start")

	var (
		mu      sync.Mutex
		summary Summary
	)

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for i, file := range files {
		idx := i
		f := file

		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			err := waitOr(g, gctx.Err())
			return summary, err
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			fs, err := parseAndPersistFile(gctx, f, repo, batch)
			if err != nil {
				log.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}

			mu.Lock()
			summary.add(fs)
			mu.Unlock()

			log.Info().
				Int("idx", idx+1).
				Int("total", len(files)).
				Str("file", base).
				Int("rows", fs.Rows).
				Int("inserted", fs.Inserted).
				Int("skipped", fs.Skipped).
				Dur("elapsed", time.Since(start)).
				Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}

	log.Info().
		Int("files", summary.Files).
		Int("rows", summary.Rows).
		Int("inserted", summary.Inserted).
		Int("skipped", summary.Skipped).
		Msg("ingestion completed")
	return summary, nil
}

// waitOr drains the group and prefers its error, which caused the cancel,
// over fallback.
func waitOr(g *errgroup.Group, fallback error) error {
	if err := g.Wait(); err != nil {
		return err
	}
	return fallback
}

// catalogFiles lists the catalog files in dir in name order.
func catalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files in %s", fileExt, dir)
	}
	sort.Strings(files)
	return files, nil
}
