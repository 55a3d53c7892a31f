// Package catalog loads restaurant catalogs and prepares them for matching:
// document validation, catalog sources, text normalization, the item index
// and opening-hours evaluation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.CatalogSource = (*DirSource)(nil)
	_ domain.CatalogSource = (*MemorySource)(nil)
)

// validID restricts restaurant ids so they cannot escape the catalog dir.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// extensions are tried in order when resolving an id to a file.
var extensions = []string{".json", ".yaml", ".yml"}

// DirSource serves catalogs from a directory, one file per restaurant
// named {id}.json, {id}.yaml or {id}.yml. Files are re-read on every Get
// so edits take effect without a restart.
type DirSource struct {
	dir string
	log *logger.Logger
}

// NewDirSource creates a directory-backed catalog source.
func NewDirSource(dir string, log *logger.Logger) *DirSource {
	return &DirSource{dir: dir, log: log}
}

// Get loads the catalog for a restaurant id.
func (s *DirSource) Get(ctx context.Context, id string) (*domain.Catalog, error) {
	if !validID.MatchString(id) {
		s.log.Debug("rejected catalog id %q", id)
		return nil, domain.ErrNotFound
	}

	for _, ext := range extensions {
		path := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat catalog %s: %w", path, err)
		}
		cat, err := Load(path)
		if err != nil {
			s.log.Warn("catalog %s failed to load: %v", path, err)
			return nil, err
		}
		s.log.Debug("loaded catalog %s (%d items)", path, cat.ItemCount())
		return cat, nil
	}

	s.log.Debug("catalog not found: %s", id)
	return nil, domain.ErrNotFound
}

// List returns the ids of every catalog file in the directory.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatFromPath(e.Name()); err != nil {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !validID.MatchString(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// MemorySource holds catalogs in memory. Safe for concurrent use.
type MemorySource struct {
	mu       sync.RWMutex
	catalogs map[string]*domain.Catalog
	log      *logger.Logger
}

// NewMemorySource creates an empty in-memory catalog source.
func NewMemorySource(log *logger.Logger) *MemorySource {
	return &MemorySource{
		catalogs: make(map[string]*domain.Catalog),
		log:      log,
	}
}

// Put registers a catalog under id. Existing entries are replaced.
func (s *MemorySource) Put(id string, c *domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[id] = c
	s.log.Debug("registered catalog %s (%d items)", id, c.ItemCount())
}

// Get returns a catalog by id.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[id]
	if !ok {
		s.log.Debug("catalog not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List returns the registered ids in sorted order.
func (s *MemorySource) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.catalogs))
	for id := range s.catalogs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
