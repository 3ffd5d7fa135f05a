package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/models"
	routefarmerquery "agri-saarathi/internal/workers/routing/route-farmer-query"
	"agri-saarathi/pkg/registry"
)

type searchStub struct {
	calls   int32
	queries chan string
}

func (s *searchStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.calls, 1)
	s.queries <- r.URL.Query().Get("q")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"items": []map[string]string{
			{
				"title":   "Tomato Price Today in Coimbatore",
				"link":    "https://www.commodityonline.com/mandiprices/tomato/tamil-nadu/coimbatore",
				"snippet": "Coimbatore tomato price ₹42/kg",
			},
			{
				"title":   "PMKSY",
				"link":    "https://pmksy.gov.in",
				"snippet": "Per Drop More Crop subsidy for drip irrigation.",
			},
		},
	})
}

func newAssistant(t *testing.T) (*Assistant, *searchStub) {
	stub := &searchStub{queries: make(chan string, 10)}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.APIs.WebSearch = config.WebSearchConfig{BaseURL: server.URL, APIKey: "key", EngineID: "cx", Timeout: 2000}
	cfg.APIs.Schemes.Domains = []string{"gov.in", "nic.in", "org.in"}

	specialists, err := NewSpecialists(Deps{Config: cfg, Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	return New(specialists, logger.NewTestLogger(t)), stub
}

func TestAsk_MarketWithoutLocationNeverSearches(t *testing.T) {
	a, stub := newAssistant(t)

	answer, err := a.Ask(context.Background(), models.Query{Text: "tomato price today"})
	require.NoError(t, err)

	assert.Equal(t, routefarmerquery.LocationPrompt, answer.Reply)
	assert.Equal(t, models.ActionClarify, answer.Route.Action)
	assert.Nil(t, answer.Market)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestAsk_MarketWithLocation(t *testing.T) {
	a, stub := newAssistant(t)

	answer, err := a.Ask(context.Background(), models.Query{Text: "tomato price today in Coimbatore"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
	assert.Equal(t, "tomato price today in Coimbatore site:commodityonline.com", <-stub.queries)
	require.NotNil(t, answer.Market)
	assert.Equal(t, models.FactPrice, answer.Market.Fact.Kind)
	assert.Equal(t, 1, answer.Market.ResultCount)
	assert.Contains(t, answer.Reply, "₹42/kg")
}

func TestAsk_Scheme(t *testing.T) {
	a, stub := newAssistant(t)

	answer, err := a.Ask(context.Background(), models.Query{Text: "drip irrigation subsidy"})
	require.NoError(t, err)

	assert.Equal(t, "drip irrigation subsidy site:gov.in OR site:nic.in OR site:org.in", <-stub.queries)
	require.NotNil(t, answer.Scheme)
	assert.Len(t, answer.Scheme.Links, 1)
	assert.Equal(t, "Per Drop More Crop subsidy for drip irrigation.\n- PMKSY: https://pmksy.gov.in", answer.Reply)
}

func TestAsk_TimeLookup(t *testing.T) {
	a, stub := newAssistant(t)

	answer, err := a.Ask(context.Background(), models.Query{Text: "what is the time now"})
	require.NoError(t, err)

	require.NotNil(t, answer.Time)
	assert.Equal(t, "Asia/Kolkata", answer.Time.TimeZone)
	assert.Zero(t, atomic.LoadInt32(&stub.calls))
}

func TestAsk_SoilWithoutCredentials(t *testing.T) {
	a, _ := newAssistant(t)

	answer, err := a.Ask(context.Background(), models.Query{Text: "which crop suits soil in Salem"})
	require.NoError(t, err)

	require.NotNil(t, answer.Report)
	require.NotNil(t, answer.Report.Failure)
	assert.Equal(t, "CONFIGURATION_ERROR", string(answer.Report.Failure.Code))
	assert.False(t, answer.Report.Report.CoordinatesFound)
}

func TestJobHandlers_CoverEveryTaskType(t *testing.T) {
	a, _ := newAssistant(t)

	handlers := a.specialists.JobHandlers()
	for _, task := range []string{
		models.TaskRouteFarmerQuery, models.TaskDiseaseSearch, models.TaskMarketPrice,
		models.TaskSchemeSearch, models.TaskSoilWeatherReport, models.TaskCurrentTime,
	} {
		assert.Contains(t, handlers, task)
	}
}

func TestShippedRegistryMatchesRouting(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "activity-registry.json")
	if _, err := os.Stat(path); err != nil {
		t.Skip("registry file not present")
	}
	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)

	for _, intent := range []models.Intent{models.IntentDisease, models.IntentMarket, models.IntentScheme, models.IntentCultivation} {
		a, ok := reg.ForIntent(string(intent))
		require.True(t, ok, intent)
		assert.Equal(t, models.SpecialistFor(intent), a.TaskType, intent)
	}
	for taskType := range (&Specialists{}).JobHandlers() {
		_, ok := reg.Find(taskType)
		assert.True(t, ok, "%s has no registry entry", taskType)
	}
}
