// internal/workers/specialists/disease-search/models.go
package diseasesearch

import (
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/extract"
)

type Input struct {
	Question string `json:"question"`
	ImageRef string `json:"imageRef,omitempty"`
}

type Output struct {
	SearchQuery string                     `json:"searchQuery,omitempty"`
	ImageRef    string                     `json:"imageRef,omitempty"`
	References  []extract.DiseaseReference `json:"references"`
	VideoCount  int                        `json:"videoCount"`
	// Text is the rendered reference list for the answer writer.
	Text    string             `json:"text"`
	Failure *apperrors.Failure `json:"failure,omitempty"`
}
