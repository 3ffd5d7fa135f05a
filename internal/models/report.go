// internal/models/report.go
package models

// FieldStatus marks how a report section was obtained. A section is never
// left out of a report; it carries one of these instead.
type FieldStatus string

const (
	StatusOK          FieldStatus = "ok"
	StatusUnavailable FieldStatus = "unavailable"
	StatusNoData      FieldStatus = "no_data"
	StatusSimulated   FieldStatus = "simulated"
	StatusSkipped     FieldStatus = "skipped"
)

type SoilTypeProbability struct {
	SoilType    string  `json:"soilType"`
	Probability float64 `json:"probability"`
}

type SoilTypeEstimate struct {
	MostProbable  string                `json:"mostProbable"`
	Probabilities []SoilTypeProbability `json:"probabilities"`
}

type DepthValue struct {
	Label string   `json:"label"`
	Mean  *float64 `json:"mean"`
	Q05   *float64 `json:"q05"`
}

type PropertyLayer struct {
	Name   string       `json:"name"`
	Unit   string       `json:"unit"`
	Depths []DepthValue `json:"depths"`
}

type SoilTypeCount struct {
	SoilType string `json:"soilType"`
	Count    int    `json:"count"`
}

// CurrentWeather leaves a value nil when the provider omitted it.
type CurrentWeather struct {
	TemperatureC     *float64 `json:"temperatureC"`
	HumidityPercent  *float64 `json:"humidityPercent"`
	Condition        string   `json:"condition"`
	WindSpeedKph     *float64 `json:"windSpeedKph"`
	WindDirectionDeg *float64 `json:"windDirectionDeg"`
}

type SoilTypeSection struct {
	Status FieldStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
	SoilTypeEstimate
}

type SoilPropertySection struct {
	Status FieldStatus     `json:"status"`
	Note   string          `json:"note,omitempty"`
	Layers []PropertyLayer `json:"layers"`
}

type SoilSummarySection struct {
	Status      FieldStatus     `json:"status"`
	Note        string          `json:"note,omitempty"`
	BoundingBox BoundingBox     `json:"boundingBox"`
	Counts      []SoilTypeCount `json:"counts"`
}

type WeatherSection struct {
	Status FieldStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
	CurrentWeather
}

type VegetationSection struct {
	Status         FieldStatus `json:"status"`
	Note           string      `json:"note,omitempty"`
	Index          float64     `json:"index"`
	Interpretation string      `json:"interpretation"`
}

// StageOutcome is the record one aggregation stage leaves behind.
type StageOutcome struct {
	Stage  string      `json:"stage"`
	Status FieldStatus `json:"status"`
	Note   string      `json:"note,omitempty"`
}

// SoilWeatherReport aggregates geocoding, soil, weather and vegetation data
// for one place.
type SoilWeatherReport struct {
	Location         string              `json:"location"`
	FormattedAddress string              `json:"formattedAddress,omitempty"`
	Coordinates      *Coordinates        `json:"coordinates,omitempty"`
	CoordinatesFound bool                `json:"coordinatesFound"`
	SoilType         SoilTypeSection     `json:"soilType"`
	SoilProperties   SoilPropertySection `json:"soilProperties"`
	SoilSummary      SoilSummarySection  `json:"soilSummary"`
	Weather          WeatherSection      `json:"weather"`
	Vegetation       VegetationSection   `json:"vegetation"`
	Stages           []StageOutcome      `json:"stages"`
}

// Degraded reports whether any stage after geocoding failed.
func (r *SoilWeatherReport) Degraded() bool {
	return len(r.UnavailableStages()) > 0
}

func (r *SoilWeatherReport) UnavailableStages() []string {
	var out []string
	for _, s := range r.Stages {
		if s.Status == StatusUnavailable {
			out = append(out, s.Stage)
		}
	}
	return out
}
