// internal/workers/specialists/scheme-search/config.go
package schemesearch

import (
	"time"

	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/search"
)

type Config struct {
	Timeout    time.Duration
	Domains    []string
	NumResults int
	Templates  []config.SchemeTemplate
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		Domains:    search.SchemeDomains,
		NumResults: search.MaxResults,
		Templates:  config.DefaultSchemeTemplates(),
	}
}
