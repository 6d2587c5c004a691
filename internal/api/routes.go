package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/pnf4665jds/sectorviz/internal/api/handlers"
	"github.com/pnf4665jds/sectorviz/internal/config"
	"github.com/pnf4665jds/sectorviz/internal/ingest"
	"github.com/pnf4665jds/sectorviz/internal/observability"
	"github.com/pnf4665jds/sectorviz/internal/render"
	"github.com/pnf4665jds/sectorviz/internal/repository"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, api huma.API, repo repository.DatasetRepository, source ingest.RecordSource, sectors render.SectorService, cfg *config.Config, metrics *observability.Collector) {
	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(repo, source, sectors, cfg, metrics)

	// Register dataset routes
	huma.Register(api, huma.Operation{
		OperationID: "uploadDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets",
		Summary:     "Upload a dataset",
		Description: "Parses a CSV of antenna sectors and stores it as a new dataset",
		Tags:        []string{"Datasets"},
	}, datasetHandler.UploadDataset)

	huma.Register(api, huma.Operation{
		OperationID: "listDatasets",
		Method:      http.MethodGet,
		Path:        "/api/datasets",
		Summary:     "List datasets",
		Description: "Returns all datasets currently held, newest first",
		Tags:        []string{"Datasets"},
	}, datasetHandler.ListDatasets)

	huma.Register(api, huma.Operation{
		OperationID: "getDataset",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}",
		Summary:     "Get a dataset",
		Description: "Returns one dataset's report, including rows skipped during parsing",
		Tags:        []string{"Datasets"},
	}, datasetHandler.GetDataset)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetRecords",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/records",
		Summary:     "Preview dataset records",
		Description: "Returns the first rows of a dataset's parsed records",
		Tags:        []string{"Datasets"},
	}, datasetHandler.GetRecords)

	huma.Register(api, huma.Operation{
		OperationID: "getDatasetSectors",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/sectors",
		Summary:     "Render sector wedges",
		Description: "Builds the sector polygon for every record and returns them as GeoJSON with viewport and styling",
		Tags:        []string{"Datasets"},
	}, datasetHandler.GetSectors)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteDataset",
		Method:        http.MethodDelete,
		Path:          "/api/datasets/{id}",
		Summary:       "Delete a dataset",
		Description:   "Drops a dataset from the store",
		Tags:          []string{"Datasets"},
		DefaultStatus: http.StatusNoContent,
	}, datasetHandler.DeleteDataset)

	huma.Register(api, huma.Operation{
		OperationID: "getServiceConfig",
		Method:      http.MethodGet,
		Path:        "/api/config",
		Summary:     "Get UI configuration",
		Description: "Returns the rendering defaults and control bounds for the map UI",
		Tags:        []string{"Config"},
	}, datasetHandler.GetServiceConfig)

	// Prometheus metrics ride on the plain router, outside the OpenAPI surface
	router.Handle("/metrics", metrics.Handler())
}
