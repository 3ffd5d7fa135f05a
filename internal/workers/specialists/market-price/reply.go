// internal/workers/specialists/market-price/reply.go
package marketprice

import (
	"fmt"
	"strings"

	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/models"
)

// composeReply renders fact as the line a farmer reads. trusted is the
// number of results left after domain filtering.
func (h *Handler) composeReply(fact models.ExtractedFact, input *Input, commodity string, trusted int) string {
	subject := ""
	if commodity != "" {
		subject = lexicon.TitleCase(commodity) + " "
	}

	switch f := fact.(type) {
	case models.PriceFact:
		if f.Unit == models.PerKg {
			return fmt.Sprintf("The live wholesale %srate in %s mandi is ₹%s/kg as per Commodity Online (Source: %s).",
				subject, input.Location, f.AmountText, f.SourceLink)
		}
		return fmt.Sprintf("The average %sprice in %s is ₹%s/Quintal as per Commodity Online (Source: %s).",
			subject, input.Location, f.AmountText, f.SourceLink)
	case models.SummaryFact:
		return fmt.Sprintf("Found potential information:\nTitle: %s\nLink: %s\nSummary: %s",
			f.Title, f.Link, strings.ReplaceAll(f.Snippet, "\n", " "))
	default:
		if trusted > 0 {
			return fmt.Sprintf("Found results for '%s' on %s, but could not extract a specific price.",
				input.Question, h.config.Site)
		}
		return fmt.Sprintf("No relevant information found for '%s' on %s.", input.Question, h.config.Site)
	}
}
