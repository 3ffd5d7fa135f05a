// internal/workers/specialists/soil-weather-report/handler.go
package soilweatherreport

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agri-saarathi/internal/common/camunda"
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/models"
)

const (
	TaskType = models.TaskSoilWeatherReport
)

type Handler struct {
	config     *Config
	aggregator *Aggregator
	validator  *validation.Validator
	errors     *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(config *Config, geocoder Geocoder, soilSource SoilSource, weatherSource WeatherSource, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = logger.ForTask(log, TaskType)
	return &Handler{
		config:     config,
		aggregator: NewAggregator(config, geocoder, soilSource, weatherSource, obs, log),
		validator:  validator,
		errors:     apperrors.NewErrorHandler(log),
		obs:        obs,
		logger:     log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := h.validator.DecodeJob(TaskType, job.Variables, &input); err != nil {
		metrics.ObserveJob(TaskType, start, string(apperrors.CodeOf(err)))
		h.obs.RecordJobProcessed(ctx, TaskType, "invalid_input")
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.ObserveJob(TaskType, start, string(apperrors.CodeOf(err)))
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.ObserveJob(TaskType, start, "")
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start))
	camunda.CompleteJob(client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	location := strings.TrimSpace(input.Location)

	report, err := h.aggregator.Aggregate(ctx, location)
	output := &Output{
		Report:   *report,
		Degraded: report.Degraded(),
		Text:     Render(report),
		Failure:  apperrors.AsFailure(err),
	}

	h.logger.Info("soil and weather report built", map[string]interface{}{
		"location":          location,
		"coordinatesFound":  report.CoordinatesFound,
		"unavailableStages": report.UnavailableStages(),
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
