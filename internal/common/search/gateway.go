package search

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	apperrors "agri-saarathi/internal/common/errors"
	commonhttp "agri-saarathi/internal/common/http"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/models"
)

// MaxResults is the most items one Custom Search call can return.
const MaxResults = 10

const serviceName = "custom_search"

type Config struct {
	BaseURL  string
	APIKey   string
	EngineID string
	Timeout  time.Duration
}

// Gateway queries Google Custom Search once per call.
type Gateway struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewGateway(config *Config, log logger.Logger) *Gateway {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Gateway{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{"component": "search_gateway"}),
	}
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns up to num results (capped at MaxResults) in engine rank order.
func (g *Gateway) Search(ctx context.Context, query string, num int) ([]models.SearchResult, error) {
	if g.config.APIKey == "" || g.config.EngineID == "" {
		return nil, apperrors.NewConfigurationError("web search", "CUSTOM_SEARCH_API_KEY or CUSTOM_SEARCH_ENGINE_ID")
	}
	if num <= 0 || num > MaxResults {
		num = MaxResults
	}

	params := url.Values{}
	params.Set("key", g.config.APIKey)
	params.Set("cx", g.config.EngineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", num))

	var resp searchResponse
	if err := g.client.GetJSON(ctx, serviceName, g.config.BaseURL, params, &resp); err != nil {
		g.logger.Warn("web search failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if len(results) == num {
			break
		}
		results = append(results, models.SearchResult{
			Title:   cleanText(item.Title),
			Link:    strings.TrimSpace(item.Link),
			Snippet: cleanText(item.Snippet),
		})
	}

	g.logger.Debug("web search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(results),
	})
	return results, nil
}

var whitespace = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}
