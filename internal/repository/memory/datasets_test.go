package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnf4665jds/sectorviz/internal/repository"
	"github.com/pnf4665jds/sectorviz/pkg/models"
)

type fakeRecorder struct {
	mu   sync.Mutex
	last int
}

func (r *fakeRecorder) SetDatasetsActive(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = n
}

func (r *fakeRecorder) Last() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newDataset(id string) *models.Dataset {
	return &models.Dataset{
		ID:        id,
		Name:      id + ".csv",
		Records:   []models.AntennaRecord{{EnodebID: "100001", CellID: "1", Latitude: 51.5, Longitude: -0.12, Azimuth: 120, Beamwidth: 65}},
		RowsTotal: 1,
		CreatedAt: time.Now(),
	}
}

func TestDatasetStore_CreateAndGet(t *testing.T) {
	store := NewDatasetStore(0, nil)
	ctx := context.Background()

	ds := newDataset("a")
	require.NoError(t, store.Create(ctx, ds))

	got, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestDatasetStore_GetUnknownID(t *testing.T) {
	store := NewDatasetStore(0, nil)

	got, err := store.GetByID(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDatasetStore_CreateDuplicate(t *testing.T) {
	store := NewDatasetStore(0, nil)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newDataset("a")))
	err := store.Create(ctx, newDataset("a"))
	assert.Error(t, err)
}

func TestDatasetStore_ListNewestFirst(t *testing.T) {
	store := NewDatasetStore(0, nil)
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		require.NoError(t, store.Create(ctx, newDataset(id)))
	}

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, datasets, 3)
	assert.Equal(t, "third", datasets[0].ID)
	assert.Equal(t, "second", datasets[1].ID)
	assert.Equal(t, "first", datasets[2].ID)
}

func TestDatasetStore_Delete(t *testing.T) {
	store := NewDatasetStore(0, nil)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newDataset("a")))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.GetByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a"), repository.ErrNotFound)

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestDatasetStore_EvictsOldestOverLimit(t *testing.T) {
	store := NewDatasetStore(2, nil)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newDataset("a")))
	require.NoError(t, store.Create(ctx, newDataset("b")))
	require.NoError(t, store.Create(ctx, newDataset("c")))

	_, err := store.GetByID(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, datasets, 2)
	assert.Equal(t, "c", datasets[0].ID)
	assert.Equal(t, "b", datasets[1].ID)
}

func TestDatasetStore_ZeroLimitMeansUnlimited(t *testing.T) {
	store := NewDatasetStore(0, nil)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, store.Create(ctx, newDataset(fmt.Sprintf("ds-%d", i))))
	}

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, datasets, 50)
}

func TestDatasetStore_ReportsSizeToRecorder(t *testing.T) {
	rec := &fakeRecorder{}
	store := NewDatasetStore(2, rec)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newDataset("a")))
	assert.Equal(t, 1, rec.Last())

	require.NoError(t, store.Create(ctx, newDataset("b")))
	require.NoError(t, store.Create(ctx, newDataset("c")))
	assert.Equal(t, 2, rec.Last())

	require.NoError(t, store.Delete(ctx, "b"))
	assert.Equal(t, 1, rec.Last())
}

func TestDatasetStore_ConcurrentAccess(t *testing.T) {
	store := NewDatasetStore(0, &fakeRecorder{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("ds-%d", i)
			if err := store.Create(ctx, newDataset(id)); err != nil {
				t.Error(err)
				return
			}
			if _, err := store.GetByID(ctx, id); err != nil {
				t.Error(err)
			}
			if _, err := store.List(ctx); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	datasets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, datasets, 16)
}
