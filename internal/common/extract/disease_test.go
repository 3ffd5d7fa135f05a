package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"agri-saarathi/internal/models"
)

func TestFormatDiseaseResults_LimitAndVideoTag(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Early blight of tomato", Link: "https://agritech.tnau.ac.in/blight", Snippet: "Brown spots with rings."},
		{Title: "Managing leaf spot", Link: "https://www.youtube.com/watch?v=abc", Snippet: "Video guide."},
		{Title: "Short link", Link: "https://youtu.be/xyz", Snippet: "Another video."},
	}
	for i := 0; i < 4; i++ {
		results = append(results, models.SearchResult{Title: fmt.Sprintf("extra %d", i), Link: "https://example.org"})
	}

	refs := FormatDiseaseResults(results, 5)

	assert.Len(t, refs, 5)
	assert.False(t, refs[0].Video)
	assert.True(t, refs[1].Video)
	assert.True(t, refs[2].Video)
	assert.Equal(t, "Brown spots with rings.", refs[0].Summary)
}

func TestRenderDiseaseReferences(t *testing.T) {
	refs := []DiseaseReference{
		{Title: "Early blight", Link: "https://a.in", Summary: "Spots."},
		{Title: "Leaf spot video", Link: "https://www.youtube.com/watch?v=1", Summary: "Watch.", Video: true},
	}

	text := RenderDiseaseReferences(refs)

	assert.Equal(t,
		"Title: Early blight\nLink: https://a.in\nSummary: Spots.\n---\n"+
			"Title: [YOUTUBE VIDEO] Leaf spot video\nLink: https://www.youtube.com/watch?v=1\nSummary: Watch.",
		text)
	assert.Equal(t, 1, strings.Count(text, "---"))
}

func TestRenderDiseaseReferences_Empty(t *testing.T) {
	assert.Equal(t, NoDiseaseResults, RenderDiseaseReferences(nil))
}
