// internal/workers/specialists/market-price/models.go
package marketprice

import (
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/models"
)

type Input struct {
	Question string `json:"question"`
	Location string `json:"location"`
}

type Output struct {
	Fact        models.FactEnvelope `json:"fact"`
	Reply       string              `json:"reply"`
	Commodity   string              `json:"commodity,omitempty"`
	Location    string              `json:"location"`
	SearchQuery string              `json:"searchQuery"`
	ResultCount int                 `json:"resultCount"`
	Failure     *apperrors.Failure  `json:"failure,omitempty"`
}
