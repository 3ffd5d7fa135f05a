// Package weather reads current conditions from the Google Weather API.
package weather

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	apperrors "agri-saarathi/internal/common/errors"
	commonhttp "agri-saarathi/internal/common/http"
	"agri-saarathi/internal/models"
)

const serviceName = "google_weather"

type Config struct {
	BaseURL      string
	APIKey       string
	LanguageCode string
	Timeout      time.Duration
}

type Client struct {
	config *Config
	client *commonhttp.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
	}
}

type conditionsResponse struct {
	Temperature *struct {
		Degrees *float64 `json:"degrees"`
	} `json:"temperature"`
	RelativeHumidity *float64 `json:"relativeHumidity"`
	WeatherCondition *struct {
		Description *struct {
			Text string `json:"text"`
		} `json:"description"`
	} `json:"weatherCondition"`
	Wind *struct {
		Speed *struct {
			Value *float64 `json:"value"`
		} `json:"speed"`
		Direction *struct {
			Degrees *float64 `json:"degrees"`
		} `json:"direction"`
	} `json:"wind"`
}

// CurrentConditions returns the weather at c. Missing fields stay nil.
func (w *Client) CurrentConditions(ctx context.Context, c models.Coordinates) (*models.CurrentWeather, error) {
	if w.config.APIKey == "" {
		return nil, apperrors.NewConfigurationError("weather", "WEATHER_API_KEY")
	}

	params := url.Values{}
	params.Set("key", w.config.APIKey)
	params.Set("location.latitude", fmt.Sprintf("%.6f", c.Latitude))
	params.Set("location.longitude", fmt.Sprintf("%.6f", c.Longitude))
	params.Set("languageCode", w.config.LanguageCode)

	endpoint := strings.TrimRight(w.config.BaseURL, "/") + "/currentConditions:lookup"

	var resp conditionsResponse
	if err := w.client.GetJSON(ctx, serviceName, endpoint, params, &resp); err != nil {
		return nil, err
	}

	out := &models.CurrentWeather{HumidityPercent: resp.RelativeHumidity}
	if resp.Temperature != nil {
		out.TemperatureC = resp.Temperature.Degrees
	}
	if resp.WeatherCondition != nil && resp.WeatherCondition.Description != nil {
		out.Condition = resp.WeatherCondition.Description.Text
	}
	if resp.Wind != nil {
		if resp.Wind.Speed != nil {
			out.WindSpeedKph = resp.Wind.Speed.Value
		}
		if resp.Wind.Direction != nil {
			out.WindDirectionDeg = resp.Wind.Direction.Degrees
		}
	}
	return out, nil
}
