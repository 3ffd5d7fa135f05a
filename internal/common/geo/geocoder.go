// Package geo resolves place names to coordinates with the Google Geocoding API.
package geo

import (
	"context"
	"net/url"
	"strings"
	"time"

	apperrors "agri-saarathi/internal/common/errors"
	commonhttp "agri-saarathi/internal/common/http"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/models"
)

const serviceName = "geocoding"

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Cache is the subset of database.JSONCache the geocoder needs.
type Cache interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

type Geocoder struct {
	config *Config
	client *commonhttp.Client
	cache  Cache
	logger logger.Logger
}

// NewGeocoder builds a geocoder. cache may be nil.
func NewGeocoder(config *Config, cache Cache, log logger.Logger) *Geocoder {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Geocoder{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		cache:  cache,
		logger: log.With(map[string]interface{}{"component": "geocoder"}),
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the first match for place. Any status other than OK, or an
// OK with no results, is LOCATION_NOT_FOUND.
func (g *Geocoder) Geocode(ctx context.Context, place string) (*models.Place, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, apperrors.NewLocationNotFoundError(place, "EMPTY_QUERY", "no place name given")
	}
	if g.config.APIKey == "" {
		return nil, apperrors.NewConfigurationError("geocoding", "MAPS_API_KEY")
	}

	key := cacheKey(place)
	if cached, ok := g.fromCache(ctx, key); ok {
		cached.Query = place
		return cached, nil
	}

	params := url.Values{}
	params.Set("address", place)
	params.Set("key", g.config.APIKey)

	var resp geocodeResponse
	if err := g.client.GetJSON(ctx, serviceName, g.config.URL, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		g.logger.Info("place not geocoded", map[string]interface{}{
			"place":  place,
			"status": resp.Status,
		})
		return nil, apperrors.NewLocationNotFoundError(place, resp.Status, resp.ErrorMessage)
	}

	first := resp.Results[0]
	result := &models.Place{
		Query:            place,
		FormattedAddress: first.FormattedAddress,
		Coordinates: models.Coordinates{
			Latitude:  first.Geometry.Location.Lat,
			Longitude: first.Geometry.Location.Lng,
		},
	}
	g.toCache(ctx, key, result)
	return result, nil
}

func (g *Geocoder) fromCache(ctx context.Context, key string) (*models.Place, bool) {
	if g.cache == nil {
		return nil, false
	}
	var cached models.Place
	found, err := g.cache.Get(ctx, key, &cached)
	if err != nil {
		metrics.GeocodeCache.WithLabelValues("error").Inc()
		g.logger.Warn("geocode cache read failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	if !found {
		metrics.GeocodeCache.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.GeocodeCache.WithLabelValues("hit").Inc()
	return &cached, true
}

func (g *Geocoder) toCache(ctx context.Context, key string, place *models.Place) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, key, place); err != nil {
		g.logger.Warn("geocode cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func cacheKey(place string) string {
	return strings.Join(strings.Fields(strings.ToLower(place)), " ")
}
