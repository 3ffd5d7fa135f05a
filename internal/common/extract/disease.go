package extract

import (
	"fmt"
	"strings"

	"agri-saarathi/internal/common/search"
	"agri-saarathi/internal/models"
)

const (
	DefaultDiseaseLimit = 5
	NoDiseaseResults    = "No new information found online."
	videoTag            = "[YOUTUBE VIDEO] "
	referenceSeparator  = "\n---\n"
)

type DiseaseReference struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
	Video   bool   `json:"video"`
}

// FormatDiseaseResults keeps the first limit results, tagging links hosted on
// a video domain.
func FormatDiseaseResults(results []models.SearchResult, limit int) []DiseaseReference {
	if limit <= 0 {
		limit = DefaultDiseaseLimit
	}
	refs := make([]DiseaseReference, 0, limit)
	for _, r := range results {
		if len(refs) == limit {
			break
		}
		_, video := search.MatchDomain(r.Link, search.VideoDomains)
		refs = append(refs, DiseaseReference{
			Title:   r.Title,
			Link:    r.Link,
			Summary: r.Snippet,
			Video:   video,
		})
	}
	return refs
}

// RenderDiseaseReferences produces the text block a language model reads.
func RenderDiseaseReferences(refs []DiseaseReference) string {
	if len(refs) == 0 {
		return NoDiseaseResults
	}
	blocks := make([]string, 0, len(refs))
	for _, ref := range refs {
		title := ref.Title
		if ref.Video {
			title = videoTag + title
		}
		blocks = append(blocks, fmt.Sprintf("Title: %s\nLink: %s\nSummary: %s", title, ref.Link, ref.Summary))
	}
	return strings.Join(blocks, referenceSeparator)
}
