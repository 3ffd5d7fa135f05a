// internal/workers/specialists/disease-search/handler.go
package diseasesearch

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
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/models"
)

const (
	TaskType = models.TaskDiseaseSearch
)

type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]models.SearchResult, error)
}

type Handler struct {
	config    *Config
	searcher  Searcher
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
	if question == "" && strings.TrimSpace(input.ImageRef) == "" {
		return nil, apperrors.NewInvalidInputError("question or imageRef is required")
	}

	output := &Output{
		SearchQuery: question,
		ImageRef:    input.ImageRef,
		References:  []extract.DiseaseReference{},
		Text:        extract.NoDiseaseResults,
	}
	// An image without words leaves nothing to search for; the image goes
	// to the answer writer as is.
	if question == "" {
		return output, nil
	}

	results, err := h.searcher.Search(ctx, question, h.config.NumResults)
	if err != nil {
		h.logger.Warn("disease search failed", map[string]interface{}{
			"code":  apperrors.CodeOf(err),
			"error": err.Error(),
		})
		output.Failure = apperrors.AsFailure(err)
		return output, nil
	}

	output.References = extract.FormatDiseaseResults(results, h.config.Limit)
	output.Text = extract.RenderDiseaseReferences(output.References)
	for _, ref := range output.References {
		if ref.Video {
			output.VideoCount++
		}
	}

	h.logger.Info("disease references collected", map[string]interface{}{
		"resultCount": len(results),
		"references":  len(output.References),
		"videos":      output.VideoCount,
		"hasImage":    input.ImageRef != "",
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
