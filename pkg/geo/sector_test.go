package geo

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcPointCount(t *testing.T) {
	tests := []struct {
		name      string
		beamwidth float64
		want      int
	}{
		{"narrow sliver uses fixed minimum", 0.5, 10},
		{"typical narrow beam", 5, 10},
		{"boundary beamwidth stays on minimum", 10, 10},
		{"just above boundary rounds down", 10.4, 10},
		{"just above boundary rounds up", 10.6, 11},
		{"one point per degree", 60, 60},
		{"rounding near full circle", 359.6, 360},
		{"full circle", 360, 360},
		{"beyond full circle is capped", 720, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArcPointCount(tt.beamwidth))
		})
	}
}

func TestDestination_DueNorthFromEquator(t *testing.T) {
	// 1000 m due north of (0, 0): latitude moves by exactly the angular
	// distance 1000/R, longitude stays on the meridian.
	got := Destination(Point{Lat: 0, Lon: 0}, 0, 1000)

	wantLat := 1000 / EarthRadiusMeters * 180 / math.Pi // ≈ 0.0089832°
	assert.InDelta(t, wantLat, got.Lat, 1e-9)
	assert.InDelta(t, 0, got.Lon, 1e-9)
}

func TestDestination_RoundTripDistance(t *testing.T) {
	origin := Point{Lat: 48.2082, Lon: 16.3738}
	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		dest := Destination(origin, bearing, 2500)
		assert.InDelta(t, 2500, Haversine(origin, dest), 1e-6,
			"bearing %v should land 2500 m away", bearing)
	}
}

func TestSectorPolygon_ClosedRing(t *testing.T) {
	poly, err := SectorPolygon(40.7128, -74.006, 120, 65, 300)
	require.NoError(t, err)

	center := Point{Lat: 40.7128, Lon: -74.006}
	assert.Equal(t, center, poly[0], "ring must start at the antenna position")
	assert.Equal(t, center, poly[len(poly)-1], "ring must close at the antenna position")
	assert.GreaterOrEqual(t, len(poly), 5)
}

func TestSectorPolygon_PointCount(t *testing.T) {
	tests := []struct {
		name      string
		beamwidth float64
	}{
		{"narrow", 5},
		{"boundary", 10},
		{"wide", 65},
		{"full circle", 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly, err := SectorPolygon(51.5, -0.12, 90, tt.beamwidth, 500)
			require.NoError(t, err)
			assert.Len(t, poly, ArcPointCount(tt.beamwidth)+2)
		})
	}
}

func TestSectorPolygon_ArcLiesOnRadius(t *testing.T) {
	center := Point{Lat: 0, Lon: 0}
	poly, err := SectorPolygon(center.Lat, center.Lon, 0, 60, 1000)
	require.NoError(t, err)
	require.Len(t, poly, 62)

	// Every arc point sits at great-circle distance radius from the
	// center; the wedge spans bearings -30..+30 and is symmetric about
	// the meridian.
	for i := 1; i < len(poly)-1; i++ {
		assert.InDelta(t, 1000, Haversine(center, poly[i]), 1e-6, "arc point %d", i)
	}
	first, last := poly[1], poly[len(poly)-2]
	assert.InDelta(t, first.Lat, last.Lat, 1e-9, "symmetric bearings share latitude")
	assert.InDelta(t, first.Lon, -last.Lon, 1e-9, "symmetric bearings mirror longitude")
}

func TestSectorPolygon_SmallSectorStaysLocal(t *testing.T) {
	// 500 m wedge in central London: every vertex within 0.01° of the
	// center is a generous sanity bound at that latitude.
	poly, err := SectorPolygon(51.5, -0.12, 90, 5, 500)
	require.NoError(t, err)
	require.Len(t, poly, 12)

	for i, p := range poly {
		assert.InDelta(t, 51.5, p.Lat, 0.01, "point %d latitude", i)
		assert.InDelta(t, -0.12, p.Lon, 0.01, "point %d longitude", i)
	}
}

func TestSectorPolygon_FullCircleEndpointsCoincide(t *testing.T) {
	// beamwidth 360 with azimuth 0 sweeps bearings -180..+180; the two
	// endpoint bearings are the same geographic direction, so the first
	// and last arc points must agree within floating-point tolerance.
	poly, err := SectorPolygon(10, 20, 0, 360, 5000)
	require.NoError(t, err)

	first, last := poly[1], poly[len(poly)-2]
	assert.InDelta(t, first.Lat, last.Lat, 1e-9)
	assert.InDelta(t, first.Lon, last.Lon, 1e-9)
}

func TestSectorPolygon_AzimuthWrapsModulo360(t *testing.T) {
	a, err := SectorPolygon(35, 139, -90, 40, 800)
	require.NoError(t, err)
	b, err := SectorPolygon(35, 139, 270, 40, 800)
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.InDelta(t, a[i].Lat, b[i].Lat, 1e-9, "point %d", i)
		assert.InDelta(t, a[i].Lon, b[i].Lon, 1e-9, "point %d", i)
	}
}

func TestSectorPolygon_PolesDoNotBlowUp(t *testing.T) {
	for _, lat := range []float64{90, -90} {
		poly, err := SectorPolygon(lat, 0, 45, 120, 10000)
		require.NoError(t, err, "latitude %v", lat)
		require.Len(t, poly, 122)
		for i, p := range poly {
			assert.False(t, math.IsNaN(p.Lat) || math.IsNaN(p.Lon),
				"latitude %v produced NaN at point %d", lat, i)
		}
	}
}

func TestSectorPolygon_Idempotent(t *testing.T) {
	a, err := SectorPolygon(51.5, -0.12, 42.5, 33, 777)
	require.NoError(t, err)
	b, err := SectorPolygon(51.5, -0.12, 42.5, 33, 777)
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical inputs must yield bit-identical output")
}

func TestSectorPolygon_ConcurrentCallsAgree(t *testing.T) {
	reference, err := SectorPolygon(48.8566, 2.3522, 200, 90, 1500)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]GeoPolygon, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			poly, err := SectorPolygon(48.8566, 2.3522, 200, 90, 1500)
			if err == nil {
				results[i] = poly
			}
		}(i)
	}
	wg.Wait()

	for i, poly := range results {
		assert.Equal(t, reference, poly, "goroutine %d", i)
	}
}

func TestSectorPolygon_InvalidInputs(t *testing.T) {
	tests := []struct {
		name      string
		lat       float64
		lon       float64
		az        float64
		beamwidth float64
		radius    float64
		wantField string
	}{
		{"zero radius", 0, 0, 0, 60, 0, "radius"},
		{"negative radius", 0, 0, 0, 60, -100, "radius"},
		{"NaN radius", 0, 0, 0, 60, math.NaN(), "radius"},
		{"infinite radius", 0, 0, 0, 60, math.Inf(1), "radius"},
		{"zero beamwidth", 0, 0, 0, 0, 300, "beamwidth"},
		{"negative beamwidth", 0, 0, 0, -30, 300, "beamwidth"},
		{"NaN beamwidth", 0, 0, 0, math.NaN(), 300, "beamwidth"},
		{"infinite beamwidth", 0, 0, 0, math.Inf(1), 300, "beamwidth"},
		{"latitude above range", 90.01, 0, 0, 60, 300, "latitude"},
		{"latitude below range", -95, 0, 0, 60, 300, "latitude"},
		{"NaN latitude", math.NaN(), 0, 0, 60, 300, "latitude"},
		{"longitude above range", 0, 180.5, 0, 60, 300, "longitude"},
		{"longitude below range", 0, -181, 0, 60, 300, "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly, err := SectorPolygon(tt.lat, tt.lon, tt.az, tt.beamwidth, tt.radius)
			require.Error(t, err)
			assert.Nil(t, poly, "no partial polygon on failure")

			var igErr *InvalidGeometryError
			require.True(t, errors.As(err, &igErr))
			assert.Equal(t, tt.wantField, igErr.Field)
		})
	}
}

func TestGeoPolygon_GeoJSON(t *testing.T) {
	poly, err := SectorPolygon(51.5, -0.12, 90, 5, 500)
	require.NoError(t, err)

	g := poly.GeoJSON()
	assert.Equal(t, "Polygon", g.Type)
	require.Len(t, g.Coordinates, 1, "single outer ring")

	ring := g.Coordinates[0]
	require.Len(t, ring, len(poly))
	for i, pt := range poly {
		assert.Equal(t, []float64{pt.Lon, pt.Lat}, ring[i], "vertex %d must be [lon, lat]", i)
	}
	assert.Equal(t, ring[0], ring[len(ring)-1], "GeoJSON ring stays closed")
}
