// Package geo implements the sector geometry used to visualize antenna
// coverage: a spherical-Earth forward geodesic and the wedge-shaped
// "sector" polygons built from it. All angles are degrees, all distances
// metres, unless a name says otherwise.
package geo

import "math"

// EarthRadiusMeters is the WGS-84 equatorial radius, used as a spherical
// approximation for every calculation in this package. This is not an
// ellipsoidal model; positional error grows with distance and latitude.
const EarthRadiusMeters = 6378137.0

// Point is a geographic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Destination solves the direct geodesic problem on a sphere: the point
// reached by travelling distanceMeters from p along the given compass
// bearing (degrees clockwise from true north).
//
// Bearings are periodic, so values outside [0, 360) behave as their
// mod-360 equivalent. The returned longitude is the raw atan2 result and
// is not renormalized into [-180, 180]; near the antimeridian it can fall
// outside that range.
func Destination(p Point, bearingDeg, distanceMeters float64) Point {
	delta := distanceMeters / EarthRadiusMeters
	theta := bearingDeg * math.Pi / 180
	phi1 := p.Lat * math.Pi / 180
	lam1 := p.Lon * math.Pi / 180

	// sin φ2 = sin φ1 · cos δ + cos φ1 · sin δ · cos θ, clamped so that
	// rounding at the poles cannot push asin out of its domain.
	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	if sinPhi2 > 1 {
		sinPhi2 = 1
	} else if sinPhi2 < -1 {
		sinPhi2 = -1
	}
	phi2 := math.Asin(sinPhi2)

	// λ2 = λ1 + atan2(sin θ · sin δ · cos φ1, cos δ − sin φ1 · sin φ2)
	lam2 := lam1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*sinPhi2,
	)

	return Point{
		Lat: phi2 * 180 / math.Pi,
		Lon: lam2 * 180 / math.Pi,
	}
}

// Haversine returns the great-circle distance in metres between two
// points, on the same sphere used by Destination.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
