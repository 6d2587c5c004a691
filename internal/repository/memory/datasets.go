// Package memory holds uploaded datasets in process memory. The service
// deliberately has no database; a restart starts from an empty store and
// an eviction limit keeps unbounded uploads from exhausting memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pnf4665jds/sectorviz/internal/repository"
	"github.com/pnf4665jds/sectorviz/pkg/models"
)

// Recorder receives store size updates as datasets come and go.
type Recorder interface {
	SetDatasetsActive(n int)
}

// DatasetStore implements DatasetRepository with a mutex-guarded map.
type DatasetStore struct {
	mu    sync.RWMutex
	items map[string]*models.Dataset
	order []string // creation order, oldest first
	limit int      // max datasets held; 0 means unlimited
	rec   Recorder
}

// NewDatasetStore creates an in-memory dataset repository. Once more
// than limit datasets are held, the oldest is evicted on the next
// Create. rec may be nil.
func NewDatasetStore(limit int, rec Recorder) *DatasetStore {
	return &DatasetStore{
		items: make(map[string]*models.Dataset),
		limit: limit,
		rec:   rec,
	}
}

// Create stores a dataset, evicting the oldest one when the store is
// over its limit.
func (s *DatasetStore) Create(ctx context.Context, dataset *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[dataset.ID]; exists {
		return fmt.Errorf("dataset %s already exists", dataset.ID)
	}

	s.items[dataset.ID] = dataset
	s.order = append(s.order, dataset.ID)

	if s.limit > 0 && len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.items, oldest)
	}

	s.record()
	return nil
}

// GetByID retrieves a dataset by ID.
func (s *DatasetStore) GetByID(ctx context.Context, id string) (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dataset, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return dataset, nil
}

// List returns all held datasets, newest first.
func (s *DatasetStore) List(ctx context.Context) ([]*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	datasets := make([]*models.Dataset, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		datasets = append(datasets, s.items[s.order[i]])
	}
	return datasets, nil
}

// Delete removes a dataset by ID.
func (s *DatasetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	for i, held := range s.order {
		if held == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.record()
	return nil
}

// record pushes the store size to the recorder. Callers hold the lock.
func (s *DatasetStore) record() {
	if s.rec != nil {
		s.rec.SetDatasetsActive(len(s.items))
	}
}

var _ repository.DatasetRepository = (*DatasetStore)(nil)
