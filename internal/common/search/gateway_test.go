package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/logger"
)

func createTestConfig(baseURL string) *Config {
	return &Config{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		EngineID: "test-cx",
		Timeout:  2 * time.Second,
	}
}

func itemsResponse(n int) map[string]interface{} {
	items := make([]map[string]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, map[string]string{
			"title":   fmt.Sprintf("  Result\n %d ", i),
			"link":    fmt.Sprintf("https://example.gov.in/%d", i),
			"snippet": fmt.Sprintf("snippet   %d", i),
		})
	}
	return map[string]interface{}{"items": items}
}

func TestGateway_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "test-cx", q.Get("cx"))
		assert.Equal(t, "tomato price Coimbatore site:commodityonline.com", q.Get("q"))
		assert.Equal(t, "10", q.Get("num"))
		_ = json.NewEncoder(w).Encode(itemsResponse(3))
	}))
	defer server.Close()

	gw := NewGateway(createTestConfig(server.URL), logger.NewTestLogger(t))
	results, err := gw.Search(context.Background(), "tomato price Coimbatore site:commodityonline.com", 10)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Result 1", results[0].Title)
	assert.Equal(t, "snippet 1", results[0].Snippet)
	assert.Equal(t, "https://example.gov.in/3", results[2].Link)
}

func TestGateway_CapsResultCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("num"))
		_ = json.NewEncoder(w).Encode(itemsResponse(12))
	}))
	defer server.Close()

	gw := NewGateway(createTestConfig(server.URL), logger.NewNoOpLogger())
	results, err := gw.Search(context.Background(), "pmksy", 25)

	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
}

func TestGateway_MissingCredentials(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no api key", func(c *Config) { c.APIKey = "" }},
		{"no engine id", func(c *Config) { c.EngineID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig(server.URL)
			tt.mutate(cfg)

			_, err := NewGateway(cfg, nil).Search(context.Background(), "tomato", 10)

			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfiguration))
		})
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestGateway_UpstreamFailureIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	}))
	defer server.Close()

	_, err := NewGateway(createTestConfig(server.URL), nil).Search(context.Background(), "tomato", 5)

	require.Error(t, err)
	stdErr := apperrors.AsStandard(err)
	assert.Equal(t, apperrors.ErrCodeUpstream, stdErr.Code)
	assert.Equal(t, "Quota exceeded", stdErr.Details)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGateway_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
	}))
	defer server.Close()

	results, err := NewGateway(createTestConfig(server.URL), nil).Search(context.Background(), "tomato", 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGateway_UnreachableKeepsKeyOutOfErrorAndLog(t *testing.T) {
	log, logs := logger.NewObserved(zapcore.DebugLevel)
	cfg := createTestConfig("http://127.0.0.1:1/search")
	cfg.APIKey = "SECRET-SEARCH-KEY"

	_, err := NewGateway(cfg, log).Search(context.Background(), "pm kisan", 5)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUpstream))
	assert.NotContains(t, apperrors.AsStandard(err).Details, "SECRET-SEARCH-KEY")
	require.Equal(t, 1, logs.FilterMessage("web search failed").Len())
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), "SECRET-SEARCH-KEY")
		}
	}
}
