package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"creatorpulse/pkg/contracts/domain"
)

// maxConcurrentLoads bounds the number of files parsed in parallel
const maxConcurrentLoads = 4

// LoadDir loads every .csv and .xlsx file in the directory concurrently.
// The result maps the file's base name (without extension) to its dataset.
// The first failing file aborts the whole load.
func (r *Reader) LoadDir(ctx context.Context, dir string) (map[string]*domain.Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	r.logger.Info("loading input directory", "dir", dir, "files", len(paths))

	var mu sync.Mutex
	datasets := make(map[string]*domain.Dataset, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var ds *domain.Dataset
			var err error
			if strings.EqualFold(filepath.Ext(path), ".csv") {
				ds, err = r.LoadCSV(path)
			} else {
				ds, err = r.LoadExcel(path, "")
			}
			if err != nil {
				return fmt.Errorf("load %s: %w", filepath.Base(path), err)
			}

			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			mu.Lock()
			datasets[name] = ds
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return datasets, nil
}
