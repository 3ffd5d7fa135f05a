// internal/workers/specialists/soil-weather-report/handler_test.go
package soilweatherreport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-saarathi/internal/common/database"
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/geo"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/soil"
	"agri-saarathi/internal/common/weather"
	"agri-saarathi/internal/models"
)

type upstream struct {
	geocodeCalls int32
	weatherFails bool
	weatherHTML  bool
	emptySummary bool
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	write := func(v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch r.URL.Path {
	case "/geocode":
		atomic.AddInt32(&u.geocodeCalls, 1)
		if r.URL.Query().Get("address") == "Atlantis" {
			write(map[string]interface{}{"status": "ZERO_RESULTS", "results": []interface{}{}})
			return
		}
		write(map[string]interface{}{
			"status": "OK",
			"results": []map[string]interface{}{{
				"formatted_address": "Coimbatore, Tamil Nadu, India",
				"geometry":          map[string]interface{}{"location": map[string]float64{"lat": 11.0168, "lng": 76.9558}},
			}},
		})
	case "/soil/type":
		write(map[string]interface{}{"properties": map[string]interface{}{
			"most_probable_soil_type": "Luvisols",
			"probabilities": []map[string]interface{}{
				{"soil_type": "Luvisols", "probability": 0.41},
				{"soil_type": "Vertisols", "probability": 0.22},
				{"soil_type": "Cambisols", "probability": 0.12},
			},
		}})
	case "/soil/property":
		write(map[string]interface{}{"properties": map[string]interface{}{
			"layers": []map[string]interface{}{{
				"name":         "phh2o",
				"unit_measure": map[string]string{"mapped_units": "pH"},
				"depths": []map[string]interface{}{
					{"label": "0-5cm", "values": map[string]float64{"mean": 7.1, "Q0.05": 6.2}},
					{"label": "100-200cm", "values": map[string]interface{}{"mean": 7.6, "Q0.05": nil}},
				},
			}},
		}})
	case "/soil/type/summary":
		summaries := []map[string]interface{}{{"soil_type": "Luvisols", "count": 14}}
		if u.emptySummary {
			summaries = []map[string]interface{}{}
		}
		write(map[string]interface{}{"properties": map[string]interface{}{"summaries": summaries}})
	case "/v1/currentConditions:lookup":
		if u.weatherHTML {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html><body><h1>502 Bad Gateway</h1><p>nginx/1.18 internal host 10.0.0.7</p></body></html>`))
			return
		}
		if u.weatherFails {
			w.WriteHeader(http.StatusForbidden)
			write(map[string]interface{}{"error": map[string]interface{}{"code": 403, "message": "API key not valid for weather"}})
			return
		}
		write(map[string]interface{}{
			"temperature":      map[string]float64{"degrees": 29.5},
			"relativeHumidity": 74,
			"weatherCondition": map[string]interface{}{"description": map[string]string{"text": "Partly cloudy"}},
			"wind": map[string]interface{}{
				"speed":     map[string]float64{"value": 11},
				"direction": map[string]float64{"degrees": 250},
			},
		})
	default:
		http.NotFound(w, r)
	}
}

func newHandler(t *testing.T, u *upstream, cache geo.Cache) *Handler {
	server := httptest.NewServer(u)
	t.Cleanup(server.Close)
	return newHandlerWithWeather(t, server.URL, server.URL+"/v1", cache)
}

func newHandlerWithWeather(t *testing.T, baseURL, weatherURL string, cache geo.Cache) *Handler {
	geocoder := geo.NewGeocoder(&geo.Config{URL: baseURL + "/geocode", APIKey: "maps-key", Timeout: 2 * time.Second}, cache, nil)
	soilClient := soil.NewClient(&soil.Config{BaseURL: baseURL, Timeout: 2 * time.Second})
	weatherClient := weather.NewClient(&weather.Config{BaseURL: weatherURL, APIKey: "SECRET-WEATHER-KEY", LanguageCode: "en-US", Timeout: 2 * time.Second})

	return NewHandler(LoadConfig(), geocoder, soilClient, weatherClient, nil, nil, logger.NewTestLogger(t))
}

func statuses(r models.SoilWeatherReport) map[string]models.FieldStatus {
	out := make(map[string]models.FieldStatus, len(r.Stages))
	for _, s := range r.Stages {
		out[s.Stage] = s.Status
	}
	return out
}

func TestExecute_FullReport(t *testing.T) {
	h := newHandler(t, &upstream{}, nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Coimbatore"})
	require.NoError(t, err)
	report := out.Report

	assert.Nil(t, out.Failure)
	assert.False(t, out.Degraded)
	assert.True(t, report.CoordinatesFound)
	assert.Equal(t, "Coimbatore, Tamil Nadu, India", report.FormattedAddress)
	assert.Equal(t, map[string]models.FieldStatus{
		StageSoilType:       models.StatusOK,
		StageSoilProperties: models.StatusOK,
		StageSoilSummary:    models.StatusOK,
		StageWeather:        models.StatusOK,
		StageVegetation:     models.StatusSimulated,
	}, statuses(report))

	assert.Equal(t, "Luvisols", report.SoilType.MostProbable)
	assert.Len(t, report.SoilType.Probabilities, 3)
	require.Len(t, report.SoilProperties.Layers, 1)
	assert.Nil(t, report.SoilProperties.Layers[0].Depths[1].Q05)
	assert.InDelta(t, 76.9058, report.SoilSummary.BoundingBox.MinLon, 1e-9)
	assert.InDelta(t, 11.0268, report.SoilSummary.BoundingBox.MaxLat, 1e-9)
	assert.Equal(t, "Partly cloudy", report.Weather.Condition)
	assert.Equal(t, 0.73, report.Vegetation.Index)
	assert.Equal(t, "Dense and healthy vegetation.", report.Vegetation.Interpretation)

	assert.Contains(t, out.Text, "Most Probable Soil Type: Luvisols")
	assert.Contains(t, out.Text, "  - Depth 100-200cm: Mean = 7.6, 5th Percentile = N/A")
	assert.Contains(t, out.Text, "  Lat: 11.007 to 11.027")
	assert.Contains(t, out.Text, "Humidity: 74%")
	assert.Contains(t, out.Text, "Wind: 11 kph from direction 250°")
}

func TestExecute_GeocodeFailureSkipsEverything(t *testing.T) {
	h := newHandler(t, &upstream{}, nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Atlantis"})
	require.NoError(t, err)

	require.NotNil(t, out.Failure)
	assert.Equal(t, apperrors.ErrCodeLocationNotFound, out.Failure.Code)
	assert.False(t, out.Report.CoordinatesFound)
	assert.Nil(t, out.Report.Coordinates)
	require.Len(t, out.Report.Stages, 5)
	for stage, status := range statuses(out.Report) {
		assert.Equal(t, models.StatusSkipped, status, stage)
	}
	assert.Equal(t, "Could not retrieve soil information because coordinates for 'Atlantis' were not found.\n", out.Text)
}

func TestExecute_OneStageFailing(t *testing.T) {
	h := newHandler(t, &upstream{weatherFails: true}, nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Coimbatore"})
	require.NoError(t, err)

	assert.Nil(t, out.Failure)
	assert.True(t, out.Degraded)
	assert.Equal(t, []string{StageWeather}, out.Report.UnavailableStages())
	assert.Equal(t, models.StatusOK, out.Report.SoilType.Status)
	assert.Equal(t, models.StatusOK, out.Report.SoilProperties.Status)
	assert.Equal(t, models.StatusOK, out.Report.SoilSummary.Status)
	assert.Equal(t, models.StatusSimulated, out.Report.Vegetation.Status)
	assert.Equal(t, "An error occurred fetching weather: API key not valid for weather", out.Report.Weather.Note)
	assert.Contains(t, out.Text, "Unavailable: An error occurred fetching weather: API key not valid for weather")
}

func TestExecute_UnstructuredWeatherErrorUsesGenericNote(t *testing.T) {
	h := newHandler(t, &upstream{weatherHTML: true}, nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Coimbatore"})
	require.NoError(t, err)

	assert.Equal(t, "An error occurred fetching weather: External service 'google_weather' returned HTTP 502", out.Report.Weather.Note)
	assert.NotContains(t, out.Text, "<html>")
	assert.NotContains(t, out.Text, "10.0.0.7")
}

func TestExecute_UnreachableWeatherKeepsKeyOut(t *testing.T) {
	server := httptest.NewServer(&upstream{})
	t.Cleanup(server.Close)
	h := newHandlerWithWeather(t, server.URL, "http://127.0.0.1:1", nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Coimbatore"})
	require.NoError(t, err)

	assert.Equal(t, []string{StageWeather}, out.Report.UnavailableStages())
	assert.Equal(t, "An error occurred fetching weather: External service 'google_weather' error", out.Report.Weather.Note)
	encoded, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "SECRET-WEATHER-KEY")
}

func TestExecute_EmptySummaryIsNoData(t *testing.T) {
	h := newHandler(t, &upstream{emptySummary: true}, nil)

	out, err := h.Execute(context.Background(), &Input{Location: "Coimbatore"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNoData, out.Report.SoilSummary.Status)
	assert.False(t, out.Degraded)
	assert.Contains(t, out.Text, "  No soil data found in this bounding box.")
}

func TestExecute_GeocodeCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	u := &upstream{}
	h := newHandler(t, u, database.NewJSONCache(client, "geocode", time.Hour))

	for i := 0; i < 2; i++ {
		out, err := h.Execute(context.Background(), &Input{Location: "  coimbatore "})
		require.NoError(t, err)
		assert.True(t, out.Report.CoordinatesFound)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&u.geocodeCalls))
}

func TestInterpretNDVI(t *testing.T) {
	assert.Equal(t, "Dense and healthy vegetation.", InterpretNDVI(0.61))
	assert.Equal(t, "Moderate vegetation.", InterpretNDVI(0.6))
	assert.Equal(t, "Moderate vegetation.", InterpretNDVI(0.31))
	assert.Equal(t, "Sparse vegetation or bare soil.", InterpretNDVI(0.3))
}

func TestExecute_NoLocationAsksForOne(t *testing.T) {
	u := &upstream{}
	h := newHandler(t, u, nil)

	out, err := h.Execute(context.Background(), &Input{Question: "what should I grow"})
	require.NoError(t, err)
	assert.Equal(t, LocationRequest, out.Text)
	require.NotNil(t, out.Failure)
	assert.Equal(t, apperrors.ErrCodeLocationNotFound, out.Failure.Code)
	assert.Zero(t, atomic.LoadInt32(&u.geocodeCalls))
}
