// internal/workers/utility/current-time/handler.go
package currenttime

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

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
	TaskType = models.TaskCurrentTime
)

type Handler struct {
	config    *Config
	location  *time.Location
	now       func() time.Time
	validator *validation.Validator
	errors    *apperrors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

// NewHandler fails only when the configured zone is unknown.
func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	loc, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return nil, apperrors.NewConfigurationError("current time", fmt.Sprintf("valid time zone, got %q", config.TimeZone))
	}
	log = logger.ForTask(log, TaskType)
	return &Handler{
		config:    config,
		location:  loc,
		now:       time.Now,
		validator: validator,
		errors:    apperrors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
	}, nil
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

func (h *Handler) execute(_ context.Context, _ *Input) (*Output, error) {
	now := h.now().In(h.location)
	return &Output{
		TimeZone:  h.location.String(),
		Timestamp: now.Format(time.RFC3339),
		Date:      now.Format("2006-01-02"),
		Time:      now.Format("15:04:05"),
		Weekday:   now.Weekday().String(),
		Reply:     fmt.Sprintf("It is %s, %s (%s).", now.Format("Monday, 2 January 2006"), now.Format("3:04 PM"), h.location.String()),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
