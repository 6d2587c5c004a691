package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// GetConfigResponse carries the defaults and bounds the map UI needs to
// build its controls. Values come from server configuration, not from
// the client.
type GetConfigResponse struct {
	Body struct {
		RadiusMeters       float64 `json:"radius_meters" example:"300" doc:"Default sector radius in meters"`
		RadiusMinMeters    float64 `json:"radius_min_meters" doc:"Lower bound of the radius control"`
		RadiusMaxMeters    float64 `json:"radius_max_meters" doc:"Upper bound of the radius control"`
		RadiusStepMeters   float64 `json:"radius_step_meters" doc:"Step of the radius control"`
		FillOpacity        float64 `json:"fill_opacity" example:"0.5" doc:"Default sector fill opacity"`
		FillColor          string  `json:"fill_color" example:"#3388ff" doc:"Default sector fill color"`
		MaxRenderedSectors int     `json:"max_rendered_sectors" doc:"Render cap per sector view"`
		MaxUploadBytes     int64   `json:"max_upload_bytes" doc:"Maximum accepted CSV upload size"`
		ZoomLevel          int     `json:"zoom_level" doc:"Initial map zoom level"`
	}
}

// DatasetDetail is the full per-dataset report: counts plus the rows
// that were skipped during parsing.
type DatasetDetail struct {
	ID        string     `json:"id" doc:"Dataset unique identifier"`
	Name      string     `json:"name" doc:"Display name"`
	Records   int        `json:"records" doc:"Rows parsed successfully"`
	RowsTotal int        `json:"rows_total" doc:"Data rows in the uploaded file"`
	Skipped   []RowError `json:"skipped,omitempty" doc:"Rows dropped during parsing"`
	CreatedAt time.Time  `json:"created_at" doc:"Upload timestamp"`
}

// DatasetSummary is the list-view projection of a dataset.
type DatasetSummary struct {
	ID          string    `json:"id" doc:"Dataset unique identifier"`
	Name        string    `json:"name" doc:"Display name"`
	Records     int       `json:"records" doc:"Rows parsed successfully"`
	RowsTotal   int       `json:"rows_total" doc:"Data rows in the uploaded file"`
	SkippedRows int       `json:"skipped_rows" doc:"Rows dropped during parsing"`
	CreatedAt   time.Time `json:"created_at" doc:"Upload timestamp"`
}

// UploadDatasetRequest represents a CSV upload. The file is the raw
// request body; the display name rides in the query string.
type UploadDatasetRequest struct {
	Name    string `query:"name" maxLength:"120" doc:"Display name for the dataset, usually the file name"`
	RawBody []byte
}

// UploadDatasetResponse returns the parsed dataset report.
type UploadDatasetResponse struct {
	Body *DatasetDetail
}

// ListDatasetsResponse represents all datasets currently held, newest
// first.
type ListDatasetsResponse struct {
	Body struct {
		Datasets []DatasetSummary `json:"datasets" doc:"Datasets, newest first"`
		Total    int              `json:"total" doc:"Number of datasets held"`
	}
}

// GetDatasetRequest represents a request for one dataset's report.
type GetDatasetRequest struct {
	ID string `path:"id" doc:"Dataset ID"`
}

// GetDatasetResponse returns the dataset report.
type GetDatasetResponse struct {
	Body *DatasetDetail
}

// GetRecordsRequest represents a request for a preview of a dataset's
// parsed rows.
type GetRecordsRequest struct {
	ID    string `path:"id" doc:"Dataset ID"`
	Limit int    `query:"limit" default:"5" minimum:"1" maximum:"1000" doc:"Maximum rows to return"`
}

// GetRecordsResponse represents the requested slice of parsed rows.
type GetRecordsResponse struct {
	Body struct {
		DatasetID string          `json:"dataset_id" doc:"Dataset ID"`
		Records   []AntennaRecord `json:"records" doc:"Parsed rows, in file order"`
		Total     int             `json:"total" doc:"Rows parsed successfully"`
	}
}

// GetSectorsRequest represents a request to render a dataset's sector
// wedges. Omitted parameters fall back to the documented defaults.
type GetSectorsRequest struct {
	ID      string  `path:"id" doc:"Dataset ID"`
	Radius  float64 `query:"radius" default:"300" exclusiveMinimum:"0" doc:"Sector radius in meters"`
	Opacity float64 `query:"opacity" default:"0.5" minimum:"0" maximum:"1" doc:"Sector fill opacity"`
	Color   string  `query:"color" default:"#3388ff" pattern:"^#[0-9a-fA-F]{6}$" doc:"Sector fill color"`
}

// GetSectorsResponse returns the rendered sector view.
type GetSectorsResponse struct {
	Body *SectorView
}

// DeleteDatasetRequest represents a request to drop a dataset.
type DeleteDatasetRequest struct {
	ID string `path:"id" doc:"Dataset ID"`
}

// DeleteDatasetResponse is intentionally empty; a successful delete
// returns no body.
type DeleteDatasetResponse struct{}
