// internal/workers/specialists/market-price/handler.go
package marketprice

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"agri-saarathi/internal/common/camunda"
	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/extract"
	"agri-saarathi/internal/common/lexicon"
	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"
	"agri-saarathi/internal/common/search"
	"agri-saarathi/internal/common/validation"
	"agri-saarathi/internal/models"
)

const (
	TaskType = models.TaskMarketPrice
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
	input.Question = strings.TrimSpace(input.Question)
	input.Location = strings.TrimSpace(input.Location)
	if input.Question == "" || input.Location == "" {
		return nil, apperrors.NewInvalidInputError("question and location are required")
	}

	output := &Output{
		Commodity:   lexicon.CommodityIn(input.Question),
		Location:    input.Location,
		SearchQuery: h.buildQuery(input),
	}

	results, err := h.searcher.Search(ctx, output.SearchQuery, h.config.NumResults)
	if err != nil {
		h.logger.Warn("market search failed", map[string]interface{}{
			"code":  apperrors.CodeOf(err),
			"error": err.Error(),
		})
		output.Failure = apperrors.AsFailure(err)
		output.Fact = models.Envelope(models.NotFoundFact{Reason: "search failed"})
		output.Reply = output.Failure.Message
		metrics.ExtractedFacts.WithLabelValues(string(models.FactNotFound)).Inc()
		return output, nil
	}

	trusted := search.Filter(results, []string{h.config.Site})
	fact := extract.ExtractPrice(trusted, input.Location)

	output.ResultCount = len(trusted)
	output.Fact = models.Envelope(fact)
	output.Reply = h.composeReply(fact, input, output.Commodity, len(trusted))
	metrics.ExtractedFacts.WithLabelValues(string(fact.Kind())).Inc()

	h.logger.Info("market price extracted", map[string]interface{}{
		"location":    input.Location,
		"commodity":   output.Commodity,
		"resultCount": len(results),
		"trusted":     len(trusted),
		"factKind":    fact.Kind(),
	})
	return output, nil
}

// buildQuery keeps the farmer's words, adds the place when they did not
// name it, and restricts the search to the market site.
func (h *Handler) buildQuery(input *Input) string {
	q := input.Question
	if !lexicon.ContainsTerm(lexicon.Normalize(q), input.Location) {
		q += " in " + input.Location
	}
	return search.SiteRestrict(q, h.config.Site)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
