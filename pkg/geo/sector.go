package geo

import (
	"fmt"
	"math"
)

// maxArcPoints caps arc sampling at one point per degree of a full
// circle, so an absurd beamwidth cannot turn into an absurd allocation.
const maxArcPoints = 360

// GeoPolygon is a closed ring of geographic points. Polygons produced by
// SectorPolygon start and end at the sector's center and contain at least
// five points.
type GeoPolygon []Point

// InvalidGeometryError reports a sector parameter the engine refuses to
// work with. Callers match it with errors.As.
type InvalidGeometryError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid sector geometry: %s %g %s", e.Field, e.Value, e.Reason)
}

// ArcPointCount returns the number of arc samples used for a sector of
// the given beamwidth: one point per degree for wide sectors, a fixed
// minimum of 10 for narrow ones, never fewer than 3 so a degenerate
// sliver still closes into a polygon rather than a line.
func ArcPointCount(beamwidthDeg float64) int {
	n := 10
	if beamwidthDeg > 10 {
		if beamwidthDeg > maxArcPoints {
			beamwidthDeg = maxArcPoints
		}
		n = int(math.Round(beamwidthDeg))
	}
	if n < 3 {
		n = 3
	}
	return n
}

// SectorPolygon computes the wedge-shaped coverage polygon of a
// directional antenna: a closed ring starting at the antenna position,
// sweeping the arc from azimuth−beamwidth/2 to azimuth+beamwidth/2 at
// great-circle distance radiusMeters, and returning to the position.
//
// Azimuth is a compass bearing and may be negative or above 360; the
// trigonometry is periodic. Latitude must lie in [-90, 90], longitude in
// [-180, 180], and beamwidth and radius must be positive finite numbers,
// otherwise a *InvalidGeometryError is returned and no polygon is built.
// The function is pure; identical inputs yield bit-identical output.
func SectorPolygon(lat, lon, azimuthDeg, beamwidthDeg, radiusMeters float64) (GeoPolygon, error) {
	if !(lat >= -90 && lat <= 90) {
		return nil, &InvalidGeometryError{Field: "latitude", Value: lat, Reason: "outside [-90, 90]"}
	}
	if !(lon >= -180 && lon <= 180) {
		return nil, &InvalidGeometryError{Field: "longitude", Value: lon, Reason: "outside [-180, 180]"}
	}
	if math.IsInf(beamwidthDeg, 0) {
		return nil, &InvalidGeometryError{Field: "beamwidth", Value: beamwidthDeg, Reason: "must be finite"}
	}
	if !(beamwidthDeg > 0) {
		return nil, &InvalidGeometryError{Field: "beamwidth", Value: beamwidthDeg, Reason: "must be positive"}
	}
	if math.IsInf(radiusMeters, 0) {
		return nil, &InvalidGeometryError{Field: "radius", Value: radiusMeters, Reason: "must be finite"}
	}
	if !(radiusMeters > 0) {
		return nil, &InvalidGeometryError{Field: "radius", Value: radiusMeters, Reason: "must be positive"}
	}

	center := Point{Lat: lat, Lon: lon}
	start := azimuthDeg - beamwidthDeg/2
	end := azimuthDeg + beamwidthDeg/2
	n := ArcPointCount(beamwidthDeg)

	ring := make(GeoPolygon, 0, n+2)
	ring = append(ring, center)
	for i := 0; i < n; i++ {
		// Evenly spaced bearings, inclusive of both ends. n >= 3 always,
		// so the divisor cannot be zero.
		bearing := start + (end-start)*float64(i)/float64(n-1)
		ring = append(ring, Destination(center, bearing, radiusMeters))
	}
	ring = append(ring, center)

	return ring, nil
}
