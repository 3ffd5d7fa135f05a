// internal/workers/specialists/scheme-search/models.go
package schemesearch

import (
	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/extract"
)

type Input struct {
	Question string `json:"question"`
	Location string `json:"location,omitempty"`
}

type Output struct {
	extract.SchemeContext
	SearchQuery string `json:"searchQuery"`
	// TemplateFallback is set only when the search succeeded with no
	// trusted results and the question names a known scheme.
	TemplateFallback *config.SchemeTemplate `json:"templateFallback,omitempty"`
}
