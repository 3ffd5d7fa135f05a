// internal/models/fact.go
package models

import "strconv"

type FactKind string

const (
	FactPrice          FactKind = "price"
	FactGeneralSummary FactKind = "general_summary"
	FactNotFound       FactKind = "not_found"
)

type PriceUnit string

const (
	PerKg      PriceUnit = "per_kg"
	PerQuintal PriceUnit = "per_quintal"
)

// ExtractedFact is exactly one of PriceFact, SummaryFact or NotFoundFact.
type ExtractedFact interface {
	Kind() FactKind
	fact()
}

// PriceFact keeps the matched text alongside the parsed amount so the value
// shown to a farmer is the one the source printed.
type PriceFact struct {
	Amount     float64
	AmountText string
	Unit       PriceUnit
	SourceLink string
}

type SummaryFact struct {
	Title   string
	Link    string
	Snippet string
}

type NotFoundFact struct {
	Reason string
}

func (PriceFact) Kind() FactKind    { return FactPrice }
func (SummaryFact) Kind() FactKind  { return FactGeneralSummary }
func (NotFoundFact) Kind() FactKind { return FactNotFound }

func (PriceFact) fact()    {}
func (SummaryFact) fact()  {}
func (NotFoundFact) fact() {}

// FactEnvelope is the wire form of an ExtractedFact in job variables.
type FactEnvelope struct {
	Kind       FactKind  `json:"kind"`
	Amount     *float64  `json:"amount,omitempty"`
	AmountText string    `json:"amountText,omitempty"`
	Unit       PriceUnit `json:"unit,omitempty"`
	SourceLink string    `json:"sourceLink,omitempty"`
	Title      string    `json:"title,omitempty"`
	Link       string    `json:"link,omitempty"`
	Snippet    string    `json:"snippet,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

func Envelope(f ExtractedFact) FactEnvelope {
	switch v := f.(type) {
	case PriceFact:
		amount := v.Amount
		return FactEnvelope{Kind: FactPrice, Amount: &amount, AmountText: v.AmountText, Unit: v.Unit, SourceLink: v.SourceLink}
	case SummaryFact:
		return FactEnvelope{Kind: FactGeneralSummary, Title: v.Title, Link: v.Link, Snippet: v.Snippet}
	case NotFoundFact:
		return FactEnvelope{Kind: FactNotFound, Reason: v.Reason}
	default:
		return FactEnvelope{Kind: FactNotFound}
	}
}

// Fact converts an envelope back into its variant.
func (e FactEnvelope) Fact() ExtractedFact {
	switch e.Kind {
	case FactPrice:
		var amount float64
		if e.Amount != nil {
			amount = *e.Amount
		} else if parsed, err := strconv.ParseFloat(e.AmountText, 64); err == nil {
			amount = parsed
		}
		return PriceFact{Amount: amount, AmountText: e.AmountText, Unit: e.Unit, SourceLink: e.SourceLink}
	case FactGeneralSummary:
		return SummaryFact{Title: e.Title, Link: e.Link, Snippet: e.Snippet}
	default:
		return NotFoundFact{Reason: e.Reason}
	}
}
