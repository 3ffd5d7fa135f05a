// internal/workers/specialists/soil-weather-report/config.go
package soilweatherreport

import (
	"time"

	"agri-saarathi/internal/common/soil"
)

type Config struct {
	Timeout    time.Duration
	TopK       int
	Properties soil.PropertyQuery
	// NDVI is reported as a simulated value until a satellite source exists.
	NDVI float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    45 * time.Second,
		TopK:       3,
		Properties: soil.DefaultPropertyQuery,
		NDVI:       0.73,
	}
}
