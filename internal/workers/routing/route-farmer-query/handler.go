// internal/workers/routing/route-farmer-query/handler.go
package routefarmerquery

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"agri-saarathi/internal/common/camunda"
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/models"
)

const (
	TaskType = models.TaskRouteFarmerQuery
)

type Handler struct {
	config     *Config
	gate       *LocationGate
	classifier *Classifier
	validator  *validation.Validator
	errors     *apperrors.ErrorHandler
	obs        *observability.Observability
	newID      func() string
	logger     logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	gate := NewLocationGate(lexicon.NewGazetteer(config.ExtraPlaces...))
	log = logger.ForTask(log, TaskType)
	return &Handler{
		config:     config,
		gate:       gate,
		classifier: NewClassifier(gate),
		validator:  validator,
		errors:     apperrors.NewErrorHandler(log),
		obs:        obs,
		newID:      uuid.NewString,
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
	ctx, span := observability.StartSpan(ctx, TaskType)
	defer observability.End(span, nil)

	query := input.Query()
	output := &Output{
		RequestID:      h.newID(),
		Intent:         h.classifier.Classify(query),
		ForwardedQuery: strings.TrimSpace(query.Text),
	}

	switch output.Intent {
	case models.IntentMarket:
		location := h.gate.Locate(query)
		if location == "" {
			output.Action = models.ActionClarify
			output.ClarifyingPrompt = LocationPrompt
			output.ForwardedQuery = ""
			break
		}
		output.Action = models.ActionDelegate
		output.Location = location
		output.Specialist = models.SpecialistFor(output.Intent)
	case models.IntentOther:
		if IsTimeQuery(query.Text) {
			output.Action = models.ActionTimeLookup
			output.Specialist = models.TaskCurrentTime
			break
		}
		output.Action = models.ActionClarify
		output.ClarifyingPrompt = GeneralPrompt
		output.ForwardedQuery = ""
	default:
		output.Action = models.ActionDelegate
		output.Location = h.gate.Locate(query)
		output.Specialist = models.SpecialistFor(output.Intent)
	}

	span.SetAttributes(
		attribute.String("intent", string(output.Intent)),
		attribute.String("action", string(output.Action)),
	)
	metrics.RouteDecisions.WithLabelValues(string(output.Intent), string(output.Action)).Inc()
	h.obs.RecordRoute(ctx, string(output.Intent), string(output.Action))

	h.logger.Info("query routed", map[string]interface{}{
		"requestId":  output.RequestID,
		"intent":     output.Intent,
		"action":     output.Action,
		"specialist": output.Specialist,
		"location":   output.Location,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
