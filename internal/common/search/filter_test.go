package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agri-saarathi/internal/models"
)

func TestFilter_SchemeDomains(t *testing.T) {
	results := []models.SearchResult{
		{Title: "PMKSY", Link: "https://pmksy.gov.in/microirrigation"},
		{Title: "blog", Link: "https://krishiblog.com/pmksy"},
		{Title: "lookalike", Link: "https://gov.in.example.com/scheme"},
		{Title: "suffix without dot", Link: "https://notnic.in/scheme"},
		{Title: "agri dept", Link: "https://agritech.tnau.ac.in"},
		{Title: "NIC portal", Link: "https://agrimachinery.nic.in/Index"},
		{Title: "NGO", Link: "http://www.nabard.org.in:8080/x"},
		{Title: "broken", Link: "::not a url"},
		{Title: "bare domain", Link: "https://GOV.IN/"},
	}

	trusted := Filter(results, SchemeDomains)

	titles := make([]string, 0, len(trusted))
	for _, r := range trusted {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"PMKSY", "NIC portal", "NGO", "bare domain"}, titles)
	assert.Equal(t, "nic.in", trusted[1].Domain)
}

func TestFilter_OutputIsOrderedSubset(t *testing.T) {
	results := []models.SearchResult{
		{Link: "https://www.commodityonline.com/a"},
		{Link: "https://agmarknet.gov.in/b"},
		{Link: "https://commodityonline.com/c"},
	}

	trusted := Filter(results, MarketDomains)

	assert.Len(t, trusted, 2)
	assert.Equal(t, results[0], trusted[0].SearchResult)
	assert.Equal(t, results[2], trusted[1].SearchResult)
	for _, r := range trusted {
		_, ok := MatchDomain(r.Link, MarketDomains)
		assert.True(t, ok)
	}
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil, SchemeDomains))
	assert.Empty(t, Filter([]models.SearchResult{{Link: "https://pmkisan.gov.in"}}, nil))
}

func TestSiteRestrict(t *testing.T) {
	assert.Equal(t, "drip subsidy site:gov.in OR site:nic.in OR site:org.in", SiteRestrict(" drip subsidy ", SchemeDomains...))
	assert.Equal(t, "tomato", SiteRestrict("tomato"))
}
