// Package render turns parsed antenna datasets into sector views: one
// GeoJSON feature per record, wedge geometry from pkg/geo, plus the
// viewport and styling the map layer applies verbatim.
package render

import (
	"context"
	"fmt"
	"html"
	"math"
	"regexp"

	"github.com/pnf4665jds/sectorviz/pkg/geo"
	"github.com/pnf4665jds/sectorviz/pkg/models"
)

// Sector outlines are always drawn the same way; only the fill is
// caller-controlled.
const (
	StrokeColor  = "#000000"
	StrokeWeight = 1.0
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// InvalidParametersError reports rendering parameters no dataset could
// be rendered with. Callers match it with errors.As.
type InvalidParametersError struct {
	Param  string
	Reason string
}

func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Options fix the service-wide rendering policy.
type Options struct {
	MaxSectors int // features per view; 0 means uncapped
	ZoomLevel  int // initial map zoom
}

// Recorder counts rendering outcomes across requests.
type Recorder interface {
	AddSectorsRendered(n int)
	AddSectorFailures(n int)
}

// SectorService builds sector views from datasets.
type SectorService interface {
	BuildView(ctx context.Context, dataset *models.Dataset, params models.SectorParameters) (*models.SectorView, error)
}

type sectorService struct {
	opts Options
	rec  Recorder
}

// NewSectorService creates a sector view builder. rec may be nil.
func NewSectorService(opts Options, rec Recorder) SectorService {
	return &sectorService{opts: opts, rec: rec}
}

// BuildView renders every record of the dataset up to the configured
// cap. A record whose geometry cannot be built is reported in
// Failures and does not abort the batch; only unusable parameters make
// BuildView fail.
func (s *sectorService) BuildView(ctx context.Context, dataset *models.Dataset, params models.SectorParameters) (*models.SectorView, error) {
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	view := &models.SectorView{
		DatasetID:    dataset.ID,
		Name:         dataset.Name,
		Center:       centroid(dataset.Records),
		ZoomLevel:    s.opts.ZoomLevel,
		RadiusMeters: params.RadiusMeters,
		FillColor:    params.FillColor,
		FillOpacity:  params.FillOpacity,
		StrokeColor:  StrokeColor,
		StrokeWeight: StrokeWeight,
		Total:        len(dataset.Records),
		Collection: models.SectorFeatureCollection{
			Type:     "FeatureCollection",
			Features: []models.SectorFeature{},
		},
	}

	for i, rec := range dataset.Records {
		if s.opts.MaxSectors > 0 && len(view.Collection.Features) >= s.opts.MaxSectors {
			view.Truncated = true
			break
		}

		polygon, err := geo.SectorPolygon(rec.Latitude, rec.Longitude, rec.Azimuth, rec.Beamwidth, params.RadiusMeters)
		if err != nil {
			view.Failures = append(view.Failures, models.SectorFailure{
				Index:    i,
				EnodebID: rec.EnodebID,
				CellID:   rec.CellID,
				Reason:   err.Error(),
			})
			continue
		}

		view.Collection.Features = append(view.Collection.Features, models.SectorFeature{
			Type:       "Feature",
			Properties: properties(rec),
			Geometry:   polygon.GeoJSON(),
		})
	}

	view.Rendered = len(view.Collection.Features)
	if s.rec != nil {
		s.rec.AddSectorsRendered(view.Rendered)
		s.rec.AddSectorFailures(len(view.Failures))
	}

	return view, nil
}

func validateParameters(params models.SectorParameters) error {
	if math.IsInf(params.RadiusMeters, 0) {
		return &InvalidParametersError{Param: "radius", Reason: "must be finite"}
	}
	if !(params.RadiusMeters > 0) {
		return &InvalidParametersError{Param: "radius", Reason: "must be positive"}
	}
	if !(params.FillOpacity >= 0 && params.FillOpacity <= 1) {
		return &InvalidParametersError{Param: "opacity", Reason: "outside [0, 1]"}
	}
	if !hexColor.MatchString(params.FillColor) {
		return &InvalidParametersError{Param: "color", Reason: "not a #rrggbb color"}
	}
	return nil
}

// properties builds the per-feature metadata. Identifier fields come
// straight from the uploaded file, so the tooltip escapes them before
// they reach innerHTML on the map.
func properties(rec models.AntennaRecord) models.SectorProperties {
	tooltip := fmt.Sprintf("<b>ENodeB:</b> %s<br><b>Cell ID:</b> %s<br><b>Azimuth:</b> %g<br><b>Beamwidth:</b> %g",
		html.EscapeString(rec.EnodebID), html.EscapeString(rec.CellID), rec.Azimuth, rec.Beamwidth)
	return models.SectorProperties{
		EnodebID:  rec.EnodebID,
		CellID:    rec.CellID,
		Azimuth:   rec.Azimuth,
		Beamwidth: rec.Beamwidth,
		Tooltip:   tooltip,
	}
}

// centroid is the mean of all record coordinates, taken over the whole
// dataset even when the render cap truncates the view.
func centroid(records []models.AntennaRecord) *geo.Point {
	if len(records) == 0 {
		return nil
	}
	var lat, lon float64
	for _, r := range records {
		lat += r.Latitude
		lon += r.Longitude
	}
	n := float64(len(records))
	return &geo.Point{Lat: lat / n, Lon: lon / n}
}
