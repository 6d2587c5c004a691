package geo

// PolygonGeometry is a GeoJSON Polygon geometry. Coordinates nest as
// rings of [longitude, latitude] vertex pairs with the outer ring
// first. Note the lon/lat order, the reverse of Point.
type PolygonGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// GeoJSON converts the polygon into a single-ring GeoJSON Polygon
// geometry. Ring closure is preserved, so engine output satisfies the
// GeoJSON requirement that the first and last positions coincide.
func (p GeoPolygon) GeoJSON() PolygonGeometry {
	ring := make([][]float64, 0, len(p))
	for _, pt := range p {
		ring = append(ring, []float64{pt.Lon, pt.Lat})
	}
	return PolygonGeometry{
		Type:        "Polygon",
		Coordinates: [][][]float64{ring},
	}
}
