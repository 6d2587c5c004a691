package models

import (
	"github.com/pnf4665jds/sectorviz/pkg/geo"
)

// SectorProperties is the per-feature metadata attached to a rendered
// sector polygon. Tooltip is pre-formatted HTML so the map layer can
// bind it without knowing the record schema.
type SectorProperties struct {
	EnodebID  string  `json:"enodeb_id"`
	CellID    string  `json:"cell_id"`
	Azimuth   float64 `json:"azimuth"`
	Beamwidth float64 `json:"beamwidth"`
	Tooltip   string  `json:"tooltip"`
}

// SectorFeature is one GeoJSON Feature wrapping a sector wedge.
type SectorFeature struct {
	Type       string              `json:"type"`
	Properties SectorProperties    `json:"properties"`
	Geometry   geo.PolygonGeometry `json:"geometry"`
}

// SectorFeatureCollection is a GeoJSON FeatureCollection of sector
// wedges, ready to hand to a map layer.
type SectorFeatureCollection struct {
	Type     string          `json:"type"`
	Features []SectorFeature `json:"features"`
}

// SectorView is the full renderer output for one dataset: the feature
// collection plus the viewport, the styling actually applied and any
// per-record failures.
type SectorView struct {
	DatasetID    string                  `json:"dataset_id"`
	Name         string                  `json:"name"`
	Center       *geo.Point              `json:"center,omitempty" doc:"Mean of all record coordinates; absent when the dataset has no records"`
	ZoomLevel    int                     `json:"zoom_level"`
	RadiusMeters float64                 `json:"radius_meters"`
	FillColor    string                  `json:"fill_color"`
	FillOpacity  float64                 `json:"fill_opacity"`
	StrokeColor  string                  `json:"stroke_color"`
	StrokeWeight float64                 `json:"stroke_weight"`
	Total        int                     `json:"total" doc:"Records in the dataset"`
	Rendered     int                     `json:"rendered" doc:"Sector polygons included in the collection"`
	Truncated    bool                    `json:"truncated" doc:"True when the render cap cut the batch short"`
	Failures     []SectorFailure         `json:"failures,omitempty"`
	Collection   SectorFeatureCollection `json:"collection"`
}
