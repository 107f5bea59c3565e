package records

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Store owns every table loaded from the export directory and the catalog
// built on top of them. It is created once at startup and never mutated,
// so it needs no teardown.
type Store struct {
	catalog *Catalog
	tables  map[string]*Table
}

// Load reads all sources from dataDir. A single missing or malformed file
// fails the whole load.
func Load(ctx context.Context, dataDir string) (*Store, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir [%s] is not a directory", dataDir)
	}
	return LoadFS(ctx, os.DirFS(dataDir))
}

// LoadFS is Load over any file system; sources are read concurrently.
func LoadFS(ctx context.Context, fsys fs.FS) (*Store, error) {
	start := time.Now()

	tables := make([]*Table, len(AllSources))
	errs := make([]error, len(AllSources))

	var wg sync.WaitGroup
	for i, src := range AllSources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			tables[i], errs[i] = readSource(fsys, src)
		}(i, src)
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name()] = t
		log.Debugf("loaded table %s: %d rows, %d users", t.Name(), t.Len(), len(t.byUser))
	}

	catalog, err := newCatalog(byName)
	if err != nil {
		return nil, err
	}

	log.Infof("records loaded: %d tables in %s", len(byName), time.Since(start))

	return &Store{
		catalog: catalog,
		tables:  byName,
	}, nil
}

func readSource(fsys fs.FS, src Source) (*Table, error) {
	f, err := fsys.Open(src.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", src.File, ErrMissingFile)
		}
		return nil, fmt.Errorf("open %s: %w", src.File, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("close %s: %s", src.File, err)
		}
	}()

	return ReadTable(src, f)
}

func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// Table returns a loaded table by source name.
func (s *Store) Table(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// HeartRate is the per-second heart rate table.
func (s *Store) HeartRate() *Table {
	return s.tables[SourceHeartRate.Name]
}

// METs is the raw per-minute MET table (values are 10x the MET score).
func (s *Store) METs() *Table {
	return s.tables[SourceMETs.Name]
}

// SleepDays is the daily sleep table.
func (s *Store) SleepDays() *Table {
	return s.tables[SourceDailySleep.Name]
}

// Stats returns the row count per table name.
func (s *Store) Stats() map[string]int {
	stats := make(map[string]int, len(s.tables))
	for name, t := range s.tables {
		stats[name] = t.Len()
	}
	return stats
}
