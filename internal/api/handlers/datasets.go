package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pnf4665jds/sectorviz/internal/config"
	"github.com/pnf4665jds/sectorviz/internal/ingest"
	"github.com/pnf4665jds/sectorviz/internal/observability"
	"github.com/pnf4665jds/sectorviz/internal/render"
	"github.com/pnf4665jds/sectorviz/internal/repository"
	"github.com/pnf4665jds/sectorviz/pkg/models"
)

// DatasetHandler handles dataset-related HTTP requests
type DatasetHandler struct {
	repo    repository.DatasetRepository
	source  ingest.RecordSource
	sectors render.SectorService
	cfg     *config.Config
	metrics *observability.Collector
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(repo repository.DatasetRepository, source ingest.RecordSource, sectors render.SectorService, cfg *config.Config, metrics *observability.Collector) *DatasetHandler {
	return &DatasetHandler{
		repo:    repo,
		source:  source,
		sectors: sectors,
		cfg:     cfg,
		metrics: metrics,
	}
}

// UploadDataset parses a CSV upload and stores it as a new dataset
func (h *DatasetHandler) UploadDataset(ctx context.Context, req *models.UploadDatasetRequest) (*models.UploadDatasetResponse, error) {
	log.Info().Str("name", req.Name).Int("bytes", len(req.RawBody)).Msg("Dataset upload received")

	if len(req.RawBody) == 0 {
		return nil, huma.Error400BadRequest("Upload is empty")
	}
	if max := h.cfg.Upload.MaxBytes; max > 0 && int64(len(req.RawBody)) > max {
		return nil, huma.NewError(http.StatusRequestEntityTooLarge, "Upload exceeds the size limit")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "dataset"
	}

	result, err := h.source.Parse(bytes.NewReader(req.RawBody))
	if err != nil {
		var missing *ingest.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, huma.Error400BadRequest("CSV is missing required columns", err)
		}
		if errors.Is(err, ingest.ErrEmptyFile) {
			return nil, huma.Error400BadRequest("File has no header row", err)
		}
		return nil, huma.Error400BadRequest("Could not read file as CSV", err)
	}

	h.metrics.AddRowsSkipped(len(result.Skipped))

	dataset := &models.Dataset{
		ID:        uuid.New().String(),
		Name:      name,
		Records:   result.Records,
		RowsTotal: result.RowsTotal,
		Skipped:   result.Skipped,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, dataset); err != nil {
		return nil, huma.Error500InternalServerError("Failed to store dataset", err)
	}

	log.Info().
		Str("datasetID", dataset.ID).
		Str("name", dataset.Name).
		Int("records", len(dataset.Records)).
		Int("skipped", len(dataset.Skipped)).
		Msg("Dataset stored")

	return &models.UploadDatasetResponse{Body: detail(dataset)}, nil
}

// ListDatasets returns all held datasets, newest first
func (h *DatasetHandler) ListDatasets(ctx context.Context, req *struct{}) (*models.ListDatasetsResponse, error) {
	datasets, err := h.repo.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list datasets", err)
	}

	resp := &models.ListDatasetsResponse{}
	resp.Body.Datasets = make([]models.DatasetSummary, 0, len(datasets))
	for _, ds := range datasets {
		resp.Body.Datasets = append(resp.Body.Datasets, models.DatasetSummary{
			ID:          ds.ID,
			Name:        ds.Name,
			Records:     len(ds.Records),
			RowsTotal:   ds.RowsTotal,
			SkippedRows: len(ds.Skipped),
			CreatedAt:   ds.CreatedAt,
		})
	}
	resp.Body.Total = len(datasets)
	return resp, nil
}

// GetDataset returns one dataset's report
func (h *DatasetHandler) GetDataset(ctx context.Context, req *models.GetDatasetRequest) (*models.GetDatasetResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &models.GetDatasetResponse{Body: detail(dataset)}, nil
}

// GetRecords returns a preview slice of a dataset's parsed rows
func (h *DatasetHandler) GetRecords(ctx context.Context, req *models.GetRecordsRequest) (*models.GetRecordsResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > len(dataset.Records) {
		limit = len(dataset.Records)
	}

	resp := &models.GetRecordsResponse{}
	resp.Body.DatasetID = dataset.ID
	resp.Body.Records = dataset.Records[:limit]
	resp.Body.Total = len(dataset.Records)
	return resp, nil
}

// GetSectors renders a dataset's sector wedges with the requested styling
func (h *DatasetHandler) GetSectors(ctx context.Context, req *models.GetSectorsRequest) (*models.GetSectorsResponse, error) {
	dataset, err := h.lookup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	params := models.SectorParameters{
		RadiusMeters: req.Radius,
		FillColor:    req.Color,
		FillOpacity:  req.Opacity,
	}

	view, err := h.sectors.BuildView(ctx, dataset, params)
	if err != nil {
		var invalid *render.InvalidParametersError
		if errors.As(err, &invalid) {
			return nil, huma.Error422UnprocessableEntity("Invalid rendering parameters", err)
		}
		return nil, huma.Error500InternalServerError("Failed to render sectors", err)
	}

	log.Info().
		Str("datasetID", dataset.ID).
		Int("rendered", view.Rendered).
		Int("failures", len(view.Failures)).
		Bool("truncated", view.Truncated).
		Msg("Sector view rendered")

	return &models.GetSectorsResponse{Body: view}, nil
}

// DeleteDataset drops a dataset from the store
func (h *DatasetHandler) DeleteDataset(ctx context.Context, req *models.DeleteDatasetRequest) (*models.DeleteDatasetResponse, error) {
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, huma.Error404NotFound("Dataset not found", err)
	}

	if err := h.repo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error404NotFound("Dataset not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to delete dataset", err)
	}

	log.Info().Str("datasetID", req.ID).Msg("Dataset deleted")
	return &models.DeleteDatasetResponse{}, nil
}

// GetServiceConfig returns the defaults and bounds for the map UI
func (h *DatasetHandler) GetServiceConfig(ctx context.Context, req *struct{}) (*models.GetConfigResponse, error) {
	resp := &models.GetConfigResponse{}
	resp.Body.RadiusMeters = h.cfg.Sector.RadiusMeters
	resp.Body.RadiusMinMeters = h.cfg.Sector.RadiusMinMeters
	resp.Body.RadiusMaxMeters = h.cfg.Sector.RadiusMaxMeters
	resp.Body.RadiusStepMeters = h.cfg.Sector.RadiusStepMeters
	resp.Body.FillOpacity = h.cfg.Sector.FillOpacity
	resp.Body.FillColor = h.cfg.Sector.FillColor
	resp.Body.MaxRenderedSectors = h.cfg.Sector.MaxRendered
	resp.Body.MaxUploadBytes = h.cfg.Upload.MaxBytes
	resp.Body.ZoomLevel = h.cfg.Sector.ZoomLevel
	return resp, nil
}

// lookup fetches a dataset by path ID, mapping bad IDs and misses to 404
func (h *DatasetHandler) lookup(ctx context.Context, id string) (*models.Dataset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, huma.Error404NotFound("Dataset not found", err)
	}

	dataset, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error404NotFound("Dataset not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to load dataset", err)
	}
	return dataset, nil
}

func detail(ds *models.Dataset) *models.DatasetDetail {
	return &models.DatasetDetail{
		ID:        ds.ID,
		Name:      ds.Name,
		Records:   len(ds.Records),
		RowsTotal: ds.RowsTotal,
		Skipped:   ds.Skipped,
		CreatedAt: ds.CreatedAt,
	}
}
