// Package assistant wires the router and the specialist handlers together,
// for the job workers and for answering a query in process.
package assistant

import (
	"time"

	"agri-saarathi/internal/common/camunda"
	"agri-saarathi/internal/common/config"
	"agri-saarathi/internal/common/geo"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/search"
	"agri-saarathi/internal/common/soil"
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/common/weather"
	"agri-saarathi/internal/models"
	routefarmerquery "agri-saarathi/internal/workers/routing/route-farmer-query"
	diseasesearch "agri-saarathi/internal/workers/specialists/disease-search"
	marketprice "agri-saarathi/internal/workers/specialists/market-price"
	schemesearch "agri-saarathi/internal/workers/specialists/scheme-search"
	soilweatherreport "agri-saarathi/internal/workers/specialists/soil-weather-report"
	currenttime "agri-saarathi/internal/workers/utility/current-time"
)

// Deps are the shared, read-only collaborators of every handler.
type Deps struct {
	Config    *config.Config
	Cache     geo.Cache
	Validator *validation.Validator
	Obs       *observability.Observability
	Logger    logger.Logger
}

type Specialists struct {
	Router  *routefarmerquery.Handler
	Disease *diseasesearch.Handler
	Market  *marketprice.Handler
	Scheme  *schemesearch.Handler
	Soil    *soilweatherreport.Handler
	Time    *currenttime.Handler
}

// NewSpecialists builds every handler from configuration. Credentials are
// not checked here; a missing key surfaces when the client is used.
func NewSpecialists(d Deps) (*Specialists, error) {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	apis := cfg.APIs

	searcher := search.NewGateway(&search.Config{
		BaseURL:  apis.WebSearch.BaseURL,
		APIKey:   apis.WebSearch.APIKey,
		EngineID: apis.WebSearch.EngineID,
		Timeout:  config.GetDuration(apis.WebSearch.Timeout),
	}, log)
	geocoder := geo.NewGeocoder(&geo.Config{
		URL:     apis.Maps.GeocodeURL,
		APIKey:  apis.Maps.APIKey,
		Timeout: config.GetDuration(apis.Maps.Timeout),
	}, d.Cache, log)
	soilClient := soil.NewClient(&soil.Config{
		BaseURL: apis.Soil.BaseURL,
		Timeout: config.GetDuration(apis.Soil.Timeout),
	})
	weatherClient := weather.NewClient(&weather.Config{
		BaseURL:      apis.Weather.BaseURL,
		APIKey:       apis.Weather.APIKey,
		LanguageCode: apis.Weather.LanguageCode,
		Timeout:      config.GetDuration(apis.Weather.Timeout),
	})

	routerCfg := routefarmerquery.LoadConfig()
	routerCfg.Timeout = jobTimeout(cfg, models.TaskRouteFarmerQuery, routerCfg.Timeout)
	routerCfg.ExtraPlaces = cfg.Routing.ExtraPlaces

	diseaseCfg := diseasesearch.LoadConfig()
	diseaseCfg.Timeout = jobTimeout(cfg, models.TaskDiseaseSearch, diseaseCfg.Timeout)

	marketCfg := marketprice.LoadConfig()
	marketCfg.Timeout = jobTimeout(cfg, models.TaskMarketPrice, marketCfg.Timeout)
	if apis.Market.Site != "" {
		marketCfg.Site = apis.Market.Site
	}

	schemeCfg := schemesearch.LoadConfig()
	schemeCfg.Timeout = jobTimeout(cfg, models.TaskSchemeSearch, schemeCfg.Timeout)
	if len(apis.Schemes.Domains) > 0 {
		schemeCfg.Domains = apis.Schemes.Domains
	}
	if len(apis.Schemes.Templates) > 0 {
		schemeCfg.Templates = apis.Schemes.Templates
	}

	soilCfg := soilweatherreport.LoadConfig()
	soilCfg.Timeout = jobTimeout(cfg, models.TaskSoilWeatherReport, soilCfg.Timeout)

	timeCfg := currenttime.LoadConfig()
	timeCfg.Timeout = jobTimeout(cfg, models.TaskCurrentTime, timeCfg.Timeout)
	if cfg.Routing.TimeZone != "" {
		timeCfg.TimeZone = cfg.Routing.TimeZone
	}
	clock, err := currenttime.NewHandler(timeCfg, d.Validator, d.Obs, log)
	if err != nil {
		return nil, err
	}

	return &Specialists{
		Router:  routefarmerquery.NewHandler(routerCfg, d.Validator, d.Obs, log),
		Disease: diseasesearch.NewHandler(diseaseCfg, searcher, d.Validator, d.Obs, log),
		Market:  marketprice.NewHandler(marketCfg, searcher, d.Validator, d.Obs, log),
		Scheme:  schemesearch.NewHandler(schemeCfg, searcher, d.Validator, d.Obs, log),
		Soil:    soilweatherreport.NewHandler(soilCfg, geocoder, soilClient, weatherClient, d.Validator, d.Obs, log),
		Time:    clock,
	}, nil
}

// JobHandlers maps each task type to its job handler.
func (s *Specialists) JobHandlers() map[string]camunda.JobHandler {
	return map[string]camunda.JobHandler{
		models.TaskRouteFarmerQuery:  s.Router,
		models.TaskDiseaseSearch:     s.Disease,
		models.TaskMarketPrice:       s.Market,
		models.TaskSchemeSearch:      s.Scheme,
		models.TaskSoilWeatherReport: s.Soil,
		models.TaskCurrentTime:       s.Time,
	}
}

func jobTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	return fallback
}
