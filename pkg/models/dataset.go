package models

import (
	"time"
)

// AntennaRecord is one antenna sector row from an uploaded dataset.
// EnodebID and CellID are opaque identifiers carried through for display;
// the geometry engine never interprets them.
type AntennaRecord struct {
	EnodebID  string  `json:"enodeb_id" doc:"Site identifier"`
	CellID    string  `json:"cell_id" doc:"Cell identifier"`
	Latitude  float64 `json:"latitude" doc:"Degrees in [-90, 90]"`
	Longitude float64 `json:"longitude" doc:"Degrees in [-180, 180]"`
	Azimuth   float64 `json:"azimuth" doc:"Compass bearing in degrees, clockwise from true north"`
	Beamwidth float64 `json:"beamwidth" doc:"Horizontal beamwidth in degrees"`
}

// RowError describes a CSV data row that was skipped during parsing.
type RowError struct {
	Row    int    `json:"row" doc:"1-based data row number, header excluded"`
	Column string `json:"column,omitempty" doc:"Offending column, when one is identifiable"`
	Value  string `json:"value,omitempty" doc:"Raw cell value"`
	Reason string `json:"reason" doc:"Why the row was skipped"`
}

// Dataset is a parsed antenna CSV held in the in-memory registry.
type Dataset struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Records   []AntennaRecord `json:"records"`
	RowsTotal int             `json:"rows_total"`
	Skipped   []RowError      `json:"skipped,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// SectorParameters is the rendering-time configuration for one sector
// view: wedge radius plus fill styling. The renderer receives it
// explicitly per request; the geometry engine only ever sees
// RadiusMeters.
type SectorParameters struct {
	RadiusMeters float64 `json:"radius_meters"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
}

// SectorFailure reports one record the renderer could not build a
// polygon for. A failure never aborts the batch; the remaining records
// still render.
type SectorFailure struct {
	Index    int    `json:"index" doc:"Position of the record in the dataset"`
	EnodebID string `json:"enodeb_id"`
	CellID   string `json:"cell_id"`
	Reason   string `json:"reason"`
}
