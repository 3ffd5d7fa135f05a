// internal/workers/specialists/soil-weather-report/models.go
package soilweatherreport

import (
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/models"
)

type Input struct {
	Location string `json:"location"`
	Question string `json:"question,omitempty"`
}

type Output struct {
	Report   models.SoilWeatherReport `json:"report"`
	Degraded bool                     `json:"degraded"`
	// Text is the sectioned report for the answer writer.
	Text    string             `json:"text"`
	Failure *apperrors.Failure `json:"failure,omitempty"`
}
