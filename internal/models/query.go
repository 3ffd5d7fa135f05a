// internal/models/query.go
package models

import "strings"

// Query is one farmer question for a single routing cycle.
type Query struct {
	Text             string `json:"text"`
	ImageRef         string `json:"imageRef,omitempty"`
	DeclaredLocation string `json:"declaredLocation,omitempty"`
}

func (q Query) HasImage() bool {
	return strings.TrimSpace(q.ImageRef) != ""
}

type Intent string

const (
	IntentDisease     Intent = "disease"
	IntentMarket      Intent = "market"
	IntentScheme      Intent = "scheme"
	IntentCultivation Intent = "cultivation"
	IntentOther       Intent = "other"
)

var Intents = []Intent{IntentDisease, IntentMarket, IntentScheme, IntentCultivation, IntentOther}

func (i Intent) Valid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

// Action is what the router decided to do with a query.
type Action string

const (
	ActionDelegate   Action = "delegate"
	ActionClarify    Action = "clarify"
	ActionTimeLookup Action = "time_lookup"
)

// Task types of the specialist job workers.
const (
	TaskRouteFarmerQuery  = "route-farmer-query"
	TaskDiseaseSearch     = "disease-search"
	TaskMarketPrice       = "market-price"
	TaskSchemeSearch      = "scheme-search"
	TaskSoilWeatherReport = "soil-weather-report"
	TaskCurrentTime       = "current-time"
)

// SpecialistFor maps an intent to the task type that serves it.
func SpecialistFor(intent Intent) string {
	switch intent {
	case IntentDisease:
		return TaskDiseaseSearch
	case IntentMarket:
		return TaskMarketPrice
	case IntentScheme:
		return TaskSchemeSearch
	case IntentCultivation:
		return TaskSoilWeatherReport
	default:
		return ""
	}
}
