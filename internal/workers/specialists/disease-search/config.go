// internal/workers/specialists/disease-search/config.go
package diseasesearch

import (
	"time"

	"agri-saarathi/internal/common/extract"
	"agri-saarathi/internal/common/search"
)

type Config struct {
	Timeout    time.Duration
	NumResults int
	Limit      int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		NumResults: search.MaxResults,
		Limit:      extract.DefaultDiseaseLimit,
	}
}
