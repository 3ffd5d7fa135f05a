// internal/workers/routing/route-farmer-query/handler_test.go
package routefarmerquery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	h := NewHandler(LoadConfig(), nil, nil, logger.NewTestLogger(t))
	h.newID = func() string { return "req-1" }
	return h
}

func TestExecute_Routing(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		intent     models.Intent
		action     models.Action
		specialist string
		location   string
		prompt     string
	}{
		{
			name:       "image with leaf symptoms",
			input:      Input{Question: "brown spots on tomato leaves", ImageRef: "uploads/leaf.jpg"},
			intent:     models.IntentDisease,
			action:     models.ActionDelegate,
			specialist: models.TaskDiseaseSearch,
		},
		{
			name:       "image alone",
			input:      Input{ImageRef: "uploads/leaf.jpg"},
			intent:     models.IntentDisease,
			action:     models.ActionDelegate,
			specialist: models.TaskDiseaseSearch,
		},
		{
			name:   "market price without location",
			input:  Input{Question: "tomato price today"},
			intent: models.IntentMarket,
			action: models.ActionClarify,
			prompt: LocationPrompt,
		},
		{
			name:       "market price with place",
			input:      Input{Question: "tomato price today in Coimbatore"},
			intent:     models.IntentMarket,
			action:     models.ActionDelegate,
			specialist: models.TaskMarketPrice,
			location:   "Coimbatore",
		},
		{
			name:       "market price with declared location",
			input:      Input{Question: "what is the onion rate", Location: "Madurai"},
			intent:     models.IntentMarket,
			action:     models.ActionDelegate,
			specialist: models.TaskMarketPrice,
			location:   "Madurai",
		},
		{
			name:   "kind of market is not a place",
			input:  Input{Question: "tomato price in vegetable market"},
			intent: models.IntentMarket,
			action: models.ActionClarify,
			prompt: LocationPrompt,
		},
		{
			name:       "named mandi",
			input:      Input{Question: "onion rate at koyambedu market"},
			intent:     models.IntentMarket,
			action:     models.ActionDelegate,
			specialist: models.TaskMarketPrice,
			location:   "Koyambedu",
		},
		{
			name:       "scheme",
			input:      Input{Question: "Is there any subsidy for drip irrigation?"},
			intent:     models.IntentScheme,
			action:     models.ActionDelegate,
			specialist: models.TaskSchemeSearch,
		},
		{
			name:       "crop damage insurance is a scheme question",
			input:      Input{Question: "crop damage insurance scheme"},
			intent:     models.IntentScheme,
			action:     models.ActionDelegate,
			specialist: models.TaskSchemeSearch,
		},
		{
			name:       "damaged leaves are a disease question",
			input:      Input{Question: "my tomato leaves are damaged"},
			intent:     models.IntentDisease,
			action:     models.ActionDelegate,
			specialist: models.TaskDiseaseSearch,
		},
		{
			name:       "price of machinery is a scheme question",
			input:      Input{Question: "price of tractor under government support"},
			intent:     models.IntentScheme,
			action:     models.ActionDelegate,
			specialist: models.TaskSchemeSearch,
		},
		{
			name:       "cultivation with district",
			input:      Input{Question: "What should I grow in Salem district?"},
			intent:     models.IntentCultivation,
			action:     models.ActionDelegate,
			specialist: models.TaskSoilWeatherReport,
			location:   "Salem",
		},
		{
			name:       "location with planning intent",
			input:      Input{Question: "I am in Erode, what is best for me"},
			intent:     models.IntentCultivation,
			action:     models.ActionDelegate,
			specialist: models.TaskSoilWeatherReport,
			location:   "Erode",
		},
		{
			name:       "time only",
			input:      Input{Question: "What is today's date?"},
			intent:     models.IntentOther,
			action:     models.ActionTimeLookup,
			specialist: models.TaskCurrentTime,
		},
		{
			name:   "unmatched",
			input:  Input{Question: "hello"},
			intent: models.IntentOther,
			action: models.ActionClarify,
			prompt: GeneralPrompt,
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)

			assert.Equal(t, "req-1", out.RequestID)
			assert.Equal(t, tt.intent, out.Intent)
			assert.Equal(t, tt.action, out.Action)
			assert.Equal(t, tt.specialist, out.Specialist)
			assert.Equal(t, tt.location, out.Location)
			assert.Equal(t, tt.prompt, out.ClarifyingPrompt)
		})
	}
}

func TestExecute_ForwardsFullQuery(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Question: "  tomato price today in Coimbatore "})
	require.NoError(t, err)
	assert.Equal(t, "tomato price today in Coimbatore", out.ForwardedQuery)

	out, err = h.Execute(context.Background(), &Input{Question: "tomato price today"})
	require.NoError(t, err)
	assert.Empty(t, out.ForwardedQuery)
}

func TestClassify_DiseaseBeatsMarket(t *testing.T) {
	c := NewClassifier(NewLocationGate(nil))
	q := models.Query{Text: "tomato price in Salem", ImageRef: "photo.png"}
	assert.Equal(t, models.IntentDisease, c.Classify(q))
}

func TestLocationGate(t *testing.T) {
	h := newTestHandler(t)

	assert.False(t, h.gate.HasLocation(models.Query{Text: "price of onion at the nearest mandi"}))
	assert.True(t, h.gate.HasLocation(models.Query{Text: "price of onion", DeclaredLocation: "Hosur"}))
	assert.Equal(t, "Tamil Nadu", h.gate.Locate(models.Query{Text: "banana rate tamil nadu"}))
	assert.Equal(t, "Oddanchatram", h.gate.Locate(models.Query{Text: "Oddanchatram mandi tomato"}))

	for _, text := range []string{
		"tomato price in vegetable market",
		"onion rate at farmers market today",
		"tomato price from Tuesday",
		"banana rate at the Fruit market",
	} {
		assert.False(t, h.gate.HasLocation(models.Query{Text: text}), text)
	}
}

func TestNewHandler_ExtraPlaces(t *testing.T) {
	h := NewHandler(&Config{ExtraPlaces: []string{"thondamuthur"}}, nil, nil, logger.NewNoOpLogger())

	out, err := h.Execute(context.Background(), &Input{Question: "tomato rate thondamuthur"})
	require.NoError(t, err)
	assert.Equal(t, models.ActionDelegate, out.Action)
	assert.Equal(t, "Thondamuthur", out.Location)
}
