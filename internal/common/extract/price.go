// Package extract turns filtered search snippets into structured facts.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/models"
)

// PriceKeywords mark a result as talking about a price.
var PriceKeywords = []string{"price", "rate", "mandi"}

var (
	perKgPattern      = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr)\s*(\d[\d,]*(?:\.\d+)?)\s*(?:/|per)\s*kg\b`)
	perQuintalPattern = regexp.MustCompile(`(?i)(?:₹|\brs\.?|\binr)\s*(\d[\d,]*(?:\.\d+)?)\s*(?:/|per)\s*(?:quintal|qtl)\b`)
)

var gazetteer = lexicon.NewGazetteer()

// ExtractPrice walks trusted results in rank order. A result qualifies when
// its title or snippet names place and a price keyword. A multi-part place
// such as "Coimbatore, Tamil Nadu" is matched by its leading name. The first qualifying
// result with a per-kg, then per-quintal, amount wins. Without any amount the
// first qualifying result is summarized; without one, NotFound.
func ExtractPrice(results []models.TrustedResult, place string) models.ExtractedFact {
	placeTerm := strings.TrimSpace(place)
	if placeTerm == "" {
		return models.NotFoundFact{Reason: "no location to match results against"}
	}

	terms := []string{placeTerm}
	if short := gazetteer.Match(placeTerm); short != "" && !strings.EqualFold(short, placeTerm) {
		terms = append(terms, short)
	}

	var first *models.TrustedResult
	for i := range results {
		r := results[i]
		if !qualifies(r, terms) {
			continue
		}
		if first == nil {
			first = &results[i]
		}
		if fact, ok := priceIn(r); ok {
			return fact
		}
	}

	if first != nil {
		return models.SummaryFact{Title: first.Title, Link: first.Link, Snippet: first.Snippet}
	}
	if len(results) == 0 {
		return models.NotFoundFact{Reason: "no trusted results"}
	}
	return models.NotFoundFact{Reason: "no result mentions " + placeTerm + " with a price"}
}

func qualifies(r models.TrustedResult, places []string) bool {
	for _, text := range []string{r.Title, r.Snippet} {
		n := lexicon.Normalize(text)
		if _, ok := lexicon.MatchAny(n, places); !ok {
			continue
		}
		if _, ok := lexicon.MatchAny(n, PriceKeywords); ok {
			return true
		}
	}
	return false
}

func priceIn(r models.TrustedResult) (models.PriceFact, bool) {
	text := r.Snippet + " " + r.Title
	for _, p := range []struct {
		pattern *regexp.Regexp
		unit    models.PriceUnit
	}{
		{perKgPattern, models.PerKg},
		{perQuintalPattern, models.PerQuintal},
	} {
		m := p.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amountText := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(amountText, 64)
		if err != nil {
			continue
		}
		return models.PriceFact{Amount: amount, AmountText: amountText, Unit: p.unit, SourceLink: r.Link}, true
	}
	return models.PriceFact{}, false
}
