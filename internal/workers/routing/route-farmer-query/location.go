// internal/workers/routing/route-farmer-query/location.go
package routefarmerquery

import (
	"strings"

	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/models"
)

// LocationPrompt is sent instead of a market search when no place is known.
const LocationPrompt = "Please let me know your location (state/district/nearest market) so I can fetch accurate market prices for you."

// LocationGate decides whether a query carries enough location to look up a
// local market price.
type LocationGate struct {
	places *lexicon.Gazetteer
}

func NewLocationGate(places *lexicon.Gazetteer) *LocationGate {
	return &LocationGate{places: places}
}

// Locate returns the declared location, else the first place named in the
// text, else "".
func (g *LocationGate) Locate(q models.Query) string {
	if declared := strings.TrimSpace(q.DeclaredLocation); declared != "" {
		return declared
	}
	return g.places.Find(q.Text)
}

func (g *LocationGate) HasLocation(q models.Query) bool {
	return g.Locate(q) != ""
}
