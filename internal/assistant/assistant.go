package assistant

import (
	"context"
	"fmt"
	"strings"

	"agri-saarathi/internal/common/logger"
	"agri-saarathi/internal/models"
	routefarmerquery "agri-saarathi/internal/workers/routing/route-farmer-query"
	diseasesearch "agri-saarathi/internal/workers/specialists/disease-search"
	marketprice "agri-saarathi/internal/workers/specialists/market-price"
	schemesearch "agri-saarathi/internal/workers/specialists/scheme-search"
	soilweatherreport "agri-saarathi/internal/workers/specialists/soil-weather-report"
	currenttime "agri-saarathi/internal/workers/utility/current-time"
)

// Answer is the outcome of one routing cycle. Exactly one specialist
// result is set when the router delegated.
type Answer struct {
	Route   *routefarmerquery.Output  `json:"route"`
	Reply   string                    `json:"reply"`
	Market  *marketprice.Output       `json:"market,omitempty"`
	Scheme  *schemesearch.Output      `json:"scheme,omitempty"`
	Disease *diseasesearch.Output     `json:"disease,omitempty"`
	Report  *soilweatherreport.Output `json:"report,omitempty"`
	Time    *currenttime.Output       `json:"time,omitempty"`
}

// Assistant answers a query without a workflow engine by calling the same
// handlers the job workers use.
type Assistant struct {
	specialists *Specialists
	logger      logger.Logger
}

func New(specialists *Specialists, log logger.Logger) *Assistant {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Assistant{
		specialists: specialists,
		logger:      log.With(map[string]interface{}{"component": "assistant"}),
	}
}

func (a *Assistant) Ask(ctx context.Context, q models.Query) (*Answer, error) {
	route, err := a.specialists.Router.Execute(ctx, &routefarmerquery.Input{
		Question: q.Text,
		ImageRef: q.ImageRef,
		Location: q.DeclaredLocation,
	})
	if err != nil {
		return nil, err
	}

	answer := &Answer{Route: route}
	if route.Action == models.ActionClarify {
		answer.Reply = route.ClarifyingPrompt
		return answer, nil
	}

	switch route.Specialist {
	case models.TaskMarketPrice:
		answer.Market, err = a.specialists.Market.Execute(ctx, &marketprice.Input{Question: route.ForwardedQuery, Location: route.Location})
		if err == nil {
			answer.Reply = answer.Market.Reply
		}
	case models.TaskSchemeSearch:
		answer.Scheme, err = a.specialists.Scheme.Execute(ctx, &schemesearch.Input{Question: route.ForwardedQuery, Location: route.Location})
		if err == nil {
			answer.Reply = schemeReply(answer.Scheme)
		}
	case models.TaskDiseaseSearch:
		answer.Disease, err = a.specialists.Disease.Execute(ctx, &diseasesearch.Input{Question: route.ForwardedQuery, ImageRef: q.ImageRef})
		if err == nil {
			answer.Reply = answer.Disease.Text
			if answer.Disease.Failure != nil {
				answer.Reply = answer.Disease.Failure.Message
			}
		}
	case models.TaskSoilWeatherReport:
		answer.Report, err = a.specialists.Soil.Execute(ctx, &soilweatherreport.Input{Location: route.Location, Question: route.ForwardedQuery})
		if err == nil {
			answer.Reply = answer.Report.Text
		}
	case models.TaskCurrentTime:
		answer.Time, err = a.specialists.Time.Execute(ctx, &currenttime.Input{Question: route.ForwardedQuery})
		if err == nil {
			answer.Reply = answer.Time.Reply
		}
	default:
		err = fmt.Errorf("no specialist for task type %q", route.Specialist)
	}
	if err != nil {
		return nil, err
	}

	a.logger.Debug("query answered", map[string]interface{}{
		"requestId":  route.RequestID,
		"specialist": route.Specialist,
	})
	return answer, nil
}

func schemeReply(out *schemesearch.Output) string {
	if out.Failure != nil {
		return out.Failure.Message
	}
	var b strings.Builder
	if out.Context != "" {
		b.WriteString(out.Context)
		b.WriteString("\n")
	}
	for _, l := range out.Links {
		fmt.Fprintf(&b, "- %s: %s\n", l.Title, l.URL)
	}
	if out.TemplateFallback != nil {
		fmt.Fprintf(&b, "See %s: %s\n", out.TemplateFallback.Name, out.TemplateFallback.Link)
	}
	if b.Len() == 0 {
		return "Sorry, I could not find reliable information for that right now."
	}
	return strings.TrimRight(b.String(), "\n")
}
