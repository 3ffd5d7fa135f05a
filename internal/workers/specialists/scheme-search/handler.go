// internal/workers/specialists/scheme-search/handler.go
package schemesearch

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agri-saarathi/internal/common/camunda"
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/extract"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/search"
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/models"
)

const (
	TaskType = models.TaskSchemeSearch
)

type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]models.SearchResult, error)
}

type Handler struct {
	config    *Config
	searcher  Searcher
	templates TemplateTable
	validator *validation.Validator
	errors    *apperrors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, searcher Searcher, validator *validation.Validator, obs *observability.Observability, log logger.Logger) *Handler {
	log = logger.ForTask(log, TaskType)
	return &Handler{
		config:    config,
		searcher:  searcher,
		templates: TemplateTable(config.Templates),
		validator: validator,
		errors:    apperrors.NewErrorHandler(log),
		obs:       obs,
		logger:    log,
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
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, apperrors.NewInvalidInputError("question is required")
	}

	output := &Output{SearchQuery: search.SiteRestrict(question, h.config.Domains...)}

	results, err := h.searcher.Search(ctx, output.SearchQuery, h.config.NumResults)
	if err != nil {
		h.logger.Warn("scheme search failed", map[string]interface{}{
			"code":  apperrors.CodeOf(err),
			"error": err.Error(),
		})
		output.SchemeContext = extract.SchemeFailure(err)
		return output, nil
	}

	output.SchemeContext = extract.CurateSchemeLinks(search.Filter(results, h.config.Domains))
	if len(output.Links) == 0 {
		if tmpl, ok := h.templates.Match(question); ok {
			output.TemplateFallback = tmpl
		}
	}

	h.logger.Info("scheme links curated", map[string]interface{}{
		"resultCount":      len(results),
		"linkCount":        len(output.Links),
		"templateFallback": output.TemplateFallback != nil,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
