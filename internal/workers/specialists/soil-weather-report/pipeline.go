// internal/workers/specialists/soil-weather-report/pipeline.go
package soilweatherreport

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/soil"
	"agri-saarathi/internal/models"
)

const (
	StageSoilType       = "soil_type"
	StageSoilProperties = "soil_properties"
	StageSoilSummary    = "soil_summary"
	StageWeather        = "weather"
	StageVegetation     = "vegetation"
)

const (
	noSummaryNote   = "No soil data found in this bounding box."
	simulatedNote   = "Simulated value, not measured."
	coordinatesNote = "Could not retrieve soil information because coordinates for '%s' were not found."
)

type Geocoder interface {
	Geocode(ctx context.Context, place string) (*models.Place, error)
}

type SoilSource interface {
	SoilType(ctx context.Context, c models.Coordinates, topK int) (*models.SoilTypeEstimate, error)
	SoilProperties(ctx context.Context, c models.Coordinates, q soil.PropertyQuery) ([]models.PropertyLayer, error)
	SoilTypeSummary(ctx context.Context, box models.BoundingBox) ([]models.SoilTypeCount, error)
}

type WeatherSource interface {
	CurrentConditions(ctx context.Context, c models.Coordinates) (*models.CurrentWeather, error)
}

type stageFunc func(ctx context.Context, c models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome

type stage struct {
	name string
	run  stageFunc
}

// Aggregator builds a SoilWeatherReport one stage at a time. Geocoding must
// succeed; after that every stage runs and records its own outcome.
type Aggregator struct {
	config   *Config
	geocoder Geocoder
	soil     SoilSource
	weather  WeatherSource
	obs      *observability.Observability
	logger   logger.Logger
}

func NewAggregator(config *Config, geocoder Geocoder, soilSource SoilSource, weatherSource WeatherSource, obs *observability.Observability, log logger.Logger) *Aggregator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Aggregator{
		config:   config,
		geocoder: geocoder,
		soil:     soilSource,
		weather:  weatherSource,
		obs:      obs,
		logger:   log,
	}
}

func (a *Aggregator) stages() []stage {
	return []stage{
		{StageSoilType, a.soilType},
		{StageSoilProperties, a.soilProperties},
		{StageSoilSummary, a.soilSummary},
		{StageWeather, a.currentWeather},
		{StageVegetation, a.vegetation},
	}
}

// Aggregate always returns a report. The error is non-nil only when the
// place could not be geocoded, in which case every other stage is skipped.
func (a *Aggregator) Aggregate(ctx context.Context, place string) (*models.SoilWeatherReport, error) {
	report := &models.SoilWeatherReport{Location: place}

	found, err := a.geocoder.Geocode(ctx, place)
	if err != nil {
		a.skipAll(ctx, report, fmt.Sprintf(coordinatesNote, place))
		a.logger.Warn("geocoding failed", map[string]interface{}{
			"location": place,
			"code":     apperrors.CodeOf(err),
		})
		return report, err
	}

	coords := found.Coordinates
	report.Coordinates = &coords
	report.CoordinatesFound = true
	report.FormattedAddress = found.FormattedAddress

	for _, s := range a.stages() {
		stageCtx, span := observability.StartSpan(ctx, "soil-weather-report."+s.name,
			attribute.Float64("latitude", coords.Latitude),
			attribute.Float64("longitude", coords.Longitude),
		)
		outcome := s.run(stageCtx, coords, report)
		outcome.Stage = s.name
		span.SetAttributes(attribute.String("status", string(outcome.Status)))
		observability.End(span, nil)

		a.record(ctx, report, outcome)
	}
	return report, nil
}

func (a *Aggregator) record(ctx context.Context, report *models.SoilWeatherReport, outcome models.StageOutcome) {
	report.Stages = append(report.Stages, outcome)
	metrics.AggregationStages.WithLabelValues(outcome.Stage, string(outcome.Status)).Inc()
	a.obs.RecordStage(ctx, outcome.Stage, string(outcome.Status))
	if outcome.Status == models.StatusUnavailable {
		a.logger.Warn("report stage unavailable", map[string]interface{}{
			"stage": outcome.Stage,
			"note":  outcome.Note,
		})
	}
}

func (a *Aggregator) skipAll(ctx context.Context, r *models.SoilWeatherReport, note string) {
	r.SoilType = models.SoilTypeSection{Status: models.StatusSkipped, Note: note}
	r.SoilProperties = models.SoilPropertySection{Status: models.StatusSkipped, Note: note}
	r.SoilSummary = models.SoilSummarySection{Status: models.StatusSkipped, Note: note}
	r.Weather = models.WeatherSection{Status: models.StatusSkipped, Note: note}
	r.Vegetation = models.VegetationSection{Status: models.StatusSkipped, Note: note}
	for _, s := range a.stages() {
		a.record(ctx, r, models.StageOutcome{Stage: s.name, Status: models.StatusSkipped, Note: note})
	}
}

func (a *Aggregator) soilType(ctx context.Context, c models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome {
	estimate, err := a.soil.SoilType(ctx, c, a.config.TopK)
	if err != nil {
		r.SoilType = models.SoilTypeSection{Status: models.StatusUnavailable, Note: failureNote("soil type", err)}
		return models.StageOutcome{Status: models.StatusUnavailable, Note: r.SoilType.Note}
	}
	r.SoilType = models.SoilTypeSection{Status: models.StatusOK, SoilTypeEstimate: *estimate}
	return models.StageOutcome{Status: models.StatusOK}
}

func (a *Aggregator) soilProperties(ctx context.Context, c models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome {
	layers, err := a.soil.SoilProperties(ctx, c, a.config.Properties)
	if err != nil {
		r.SoilProperties = models.SoilPropertySection{Status: models.StatusUnavailable, Note: failureNote("soil properties", err)}
		return models.StageOutcome{Status: models.StatusUnavailable, Note: r.SoilProperties.Note}
	}
	r.SoilProperties = models.SoilPropertySection{Status: models.StatusOK, Layers: layers}
	return models.StageOutcome{Status: models.StatusOK}
}

func (a *Aggregator) soilSummary(ctx context.Context, c models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome {
	box := c.BoundingBox()
	counts, err := a.soil.SoilTypeSummary(ctx, box)
	switch {
	case err != nil:
		r.SoilSummary = models.SoilSummarySection{Status: models.StatusUnavailable, Note: failureNote("soil summary", err), BoundingBox: box}
	case len(counts) == 0:
		r.SoilSummary = models.SoilSummarySection{Status: models.StatusNoData, Note: noSummaryNote, BoundingBox: box, Counts: []models.SoilTypeCount{}}
	default:
		r.SoilSummary = models.SoilSummarySection{Status: models.StatusOK, BoundingBox: box, Counts: counts}
	}
	return models.StageOutcome{Status: r.SoilSummary.Status, Note: r.SoilSummary.Note}
}

func (a *Aggregator) currentWeather(ctx context.Context, c models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome {
	current, err := a.weather.CurrentConditions(ctx, c)
	if err != nil {
		r.Weather = models.WeatherSection{Status: models.StatusUnavailable, Note: failureNote("weather", err)}
		return models.StageOutcome{Status: models.StatusUnavailable, Note: r.Weather.Note}
	}
	r.Weather = models.WeatherSection{Status: models.StatusOK, CurrentWeather: *current}
	return models.StageOutcome{Status: models.StatusOK}
}

func (a *Aggregator) vegetation(_ context.Context, _ models.Coordinates, r *models.SoilWeatherReport) models.StageOutcome {
	r.Vegetation = models.VegetationSection{
		Status:         models.StatusSimulated,
		Note:           simulatedNote,
		Index:          a.config.NDVI,
		Interpretation: InterpretNDVI(a.config.NDVI),
	}
	return models.StageOutcome{Status: models.StatusSimulated, Note: simulatedNote}
}

// InterpretNDVI bands a vegetation index into a farmer-readable phrase.
func InterpretNDVI(v float64) string {
	switch {
	case v > 0.6:
		return "Dense and healthy vegetation."
	case v > 0.3:
		return "Moderate vegetation."
	default:
		return "Sparse vegetation or bare soil."
	}
}

// failureNote uses the provider's structured error message when an HTTP
// response carried one, and the generic message otherwise.
func failureNote(what string, err error) string {
	stdErr := apperrors.AsStandard(err)
	if status, _ := stdErr.Metadata["status"].(int); status > 0 && stdErr.Details != "" {
		return fmt.Sprintf("An error occurred fetching %s: %s", what, stdErr.Details)
	}
	return fmt.Sprintf("An error occurred fetching %s: %s", what, stdErr.Message)
}
