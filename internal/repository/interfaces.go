package repository

import (
	"context"
	"errors"

	"github.com/pnf4665jds/sectorviz/pkg/models"
)

// ErrNotFound is returned when no dataset has the requested ID.
var ErrNotFound = errors.New("dataset not found")

// DatasetRepository defines the interface for dataset storage operations.
// Datasets are immutable once stored; implementations hand out the
// stored value without copying.
type DatasetRepository interface {
	Create(ctx context.Context, dataset *models.Dataset) error
	GetByID(ctx context.Context, id string) (*models.Dataset, error)
	List(ctx context.Context) ([]*models.Dataset, error)
	Delete(ctx context.Context, id string) error
}
