package extract

import (
	"strings"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/models"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type SchemeLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SchemeContext is the curated material handed to the answer writer.
type SchemeContext struct {
	Status  string             `json:"status"`
	Context string             `json:"context"`
	Links   []SchemeLink       `json:"links"`
	Failure *apperrors.Failure `json:"failure,omitempty"`
}

// CurateSchemeLinks joins the snippets of trusted results into one context
// block with a parallel list of links. Results missing a snippet or a link
// are skipped.
func CurateSchemeLinks(results []models.TrustedResult) SchemeContext {
	snippets := make([]string, 0, len(results))
	links := make([]SchemeLink, 0, len(results))
	for _, r := range results {
		snippet := strings.TrimSpace(r.Snippet)
		link := strings.TrimSpace(r.Link)
		if snippet == "" || link == "" {
			continue
		}
		snippets = append(snippets, snippet)
		links = append(links, SchemeLink{Title: strings.TrimSpace(r.Title), URL: link})
	}
	return SchemeContext{
		Status:  StatusSuccess,
		Context: strings.Join(snippets, "\n"),
		Links:   links,
	}
}

// SchemeFailure wraps a search failure as a context value.
func SchemeFailure(err error) SchemeContext {
	return SchemeContext{
		Status:  StatusError,
		Links:   []SchemeLink{},
		Failure: apperrors.AsFailure(err),
	}
}
