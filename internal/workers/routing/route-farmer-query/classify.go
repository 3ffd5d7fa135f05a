// internal/workers/routing/route-farmer-query/classify.go
package routefarmerquery

import (
	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/models"
)

// GeneralPrompt answers a query that matched no specialist.
const GeneralPrompt = "Could you tell me a little more about what you need? I can help with crop diseases, market prices, government schemes and soil or weather conditions for your farm."

// Classifier maps a query to exactly one intent. It only reads vocabulary
// and never guesses disease or price content.
type Classifier struct {
	gate *LocationGate
}

func NewClassifier(gate *LocationGate) *Classifier {
	return &Classifier{gate: gate}
}

// Classify applies the intents in priority order: disease, market, scheme,
// cultivation, other.
func (c *Classifier) Classify(q models.Query) models.Intent {
	n := lexicon.Normalize(q.Text)

	if q.HasImage() || lexicon.DescribesDisease(n) {
		return models.IntentDisease
	}
	if isPriceRequest(q.Text, n) {
		return models.IntentMarket
	}
	if matches(n, lexicon.SchemeTerms) {
		return models.IntentScheme
	}
	if matches(n, lexicon.CultivationTerms) {
		return models.IntentCultivation
	}
	if matches(n, lexicon.PlanningTerms) && c.gate.HasLocation(q) {
		return models.IntentCultivation
	}
	return models.IntentOther
}

// IsTimeQuery reports a plain date or time question.
func IsTimeQuery(text string) bool {
	return matches(lexicon.Normalize(text), lexicon.TimeTerms)
}

// A price request names a price word together with a commodity or a market.
func isPriceRequest(text, normalized string) bool {
	if !matches(normalized, lexicon.PriceTerms) {
		return false
	}
	return lexicon.CommodityIn(text) != "" || matches(normalized, lexicon.MarketWords)
}

func matches(normalized string, terms []string) bool {
	_, ok := lexicon.MatchAny(normalized, terms)
	return ok
}
