// internal/models/geo.go
package models

// Bounding box half-widths around a point, in degrees.
const (
	BoxLonDelta = 0.05
	BoxLatDelta = 0.01
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type BoundingBox struct {
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
}

func (c Coordinates) BoundingBox() BoundingBox {
	return BoundingBox{
		MinLon: c.Longitude - BoxLonDelta,
		MaxLon: c.Longitude + BoxLonDelta,
		MinLat: c.Latitude - BoxLatDelta,
		MaxLat: c.Latitude + BoxLatDelta,
	}
}

// Place is a geocoded place name.
type Place struct {
	Query            string      `json:"query"`
	FormattedAddress string      `json:"formattedAddress"`
	Coordinates      Coordinates `json:"coordinates"`
}
