// Package soil reads soil type and property estimates from the OpenEPI soil API.
package soil

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	commonhttp "agri-saarathi/internal/common/http"
	"agri-saarathi/internal/models"
)

const serviceName = "openepi_soil"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// PropertyQuery selects depths, properties and statistics for /soil/property.
type PropertyQuery struct {
	Depths     []string
	Properties []string
	Values     []string
}

// DefaultPropertyQuery asks for bulk density and pH at the top and bottom layers.
var DefaultPropertyQuery = PropertyQuery{
	Depths:     []string{"0-5cm", "100-200cm"},
	Properties: []string{"bdod", "phh2o"},
	Values:     []string{"mean", "Q0.05"},
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

type typeResponse struct {
	Properties struct {
		MostProbableSoilType string `json:"most_probable_soil_type"`
		Probabilities        []struct {
			SoilType    string  `json:"soil_type"`
			Probability float64 `json:"probability"`
		} `json:"probabilities"`
	} `json:"properties"`
}

// SoilType returns the most probable soil type at c and the topK candidates.
func (s *Client) SoilType(ctx context.Context, c models.Coordinates, topK int) (*models.SoilTypeEstimate, error) {
	params := pointParams(c)
	params.Set("top_k", strconv.Itoa(topK))

	var resp typeResponse
	if err := s.client.GetJSON(ctx, serviceName, s.endpoint("/soil/type"), params, &resp); err != nil {
		return nil, err
	}

	estimate := &models.SoilTypeEstimate{
		MostProbable:  resp.Properties.MostProbableSoilType,
		Probabilities: make([]models.SoilTypeProbability, 0, len(resp.Properties.Probabilities)),
	}
	for _, p := range resp.Properties.Probabilities {
		estimate.Probabilities = append(estimate.Probabilities, models.SoilTypeProbability{
			SoilType:    p.SoilType,
			Probability: p.Probability,
		})
	}
	return estimate, nil
}

type propertyResponse struct {
	Properties struct {
		Layers []struct {
			Name        string `json:"name"`
			UnitMeasure struct {
				MappedUnits string `json:"mapped_units"`
			} `json:"unit_measure"`
			Depths []struct {
				Label  string              `json:"label"`
				Values map[string]*float64 `json:"values"`
			} `json:"depths"`
		} `json:"layers"`
	} `json:"properties"`
}

// SoilProperties returns one layer per requested property.
func (s *Client) SoilProperties(ctx context.Context, c models.Coordinates, q PropertyQuery) ([]models.PropertyLayer, error) {
	params := pointParams(c)
	for _, d := range q.Depths {
		params.Add("depths", d)
	}
	for _, p := range q.Properties {
		params.Add("properties", p)
	}
	for _, v := range q.Values {
		params.Add("values", v)
	}

	var resp propertyResponse
	if err := s.client.GetJSON(ctx, serviceName, s.endpoint("/soil/property"), params, &resp); err != nil {
		return nil, err
	}

	layers := make([]models.PropertyLayer, 0, len(resp.Properties.Layers))
	for _, l := range resp.Properties.Layers {
		layer := models.PropertyLayer{
			Name:   l.Name,
			Unit:   l.UnitMeasure.MappedUnits,
			Depths: make([]models.DepthValue, 0, len(l.Depths)),
		}
		for _, d := range l.Depths {
			layer.Depths = append(layer.Depths, models.DepthValue{
				Label: d.Label,
				Mean:  d.Values["mean"],
				Q05:   d.Values["Q0.05"],
			})
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

type summaryResponse struct {
	Properties struct {
		Summaries []struct {
			SoilType string `json:"soil_type"`
			Count    int    `json:"count"`
		} `json:"summaries"`
	} `json:"properties"`
}

// SoilTypeSummary counts soil types inside box. An empty slice means the
// service had no data for the box.
func (s *Client) SoilTypeSummary(ctx context.Context, box models.BoundingBox) ([]models.SoilTypeCount, error) {
	params := url.Values{}
	params.Set("min_lon", formatCoord(box.MinLon))
	params.Set("max_lon", formatCoord(box.MaxLon))
	params.Set("min_lat", formatCoord(box.MinLat))
	params.Set("max_lat", formatCoord(box.MaxLat))

	var resp summaryResponse
	if err := s.client.GetJSON(ctx, serviceName, s.endpoint("/soil/type/summary"), params, &resp); err != nil {
		return nil, err
	}

	counts := make([]models.SoilTypeCount, 0, len(resp.Properties.Summaries))
	for _, sm := range resp.Properties.Summaries {
		counts = append(counts, models.SoilTypeCount{SoilType: sm.SoilType, Count: sm.Count})
	}
	return counts, nil
}

func (s *Client) endpoint(path string) string {
	return strings.TrimRight(s.config.BaseURL, "/") + path
}

func pointParams(c models.Coordinates) url.Values {
	params := url.Values{}
	params.Set("lat", formatCoord(c.Latitude))
	params.Set("lon", formatCoord(c.Longitude))
	return params
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
