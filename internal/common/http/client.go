package http

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	apperrors "agri-saarathi/internal/common/errors"
	"agri-saarathi/internal/common/metrics"
	"agri-saarathi/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
)

const maxErrorBody = 64 << 10

type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetJSON issues one GET to endpoint with params and decodes a 2xx body into
// out. Failures come back as UPSTREAM_ERROR or UPSTREAM_TIMEOUT, carrying the
// provider's own error message when the body has one. The request URL carries
// credentials and never appears in the returned error. No retries.
func (c *Client) GetJSON(ctx context.Context, service, endpoint string, params url.Values, out interface{}) (err error) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "http.get "+service, attribute.String("upstream.service", service))
	defer func() {
		metrics.ObserveUpstream(service, outcome(err), start)
		observability.End(span, err)
	}()

	target := endpoint
	if len(params) > 0 {
		target = endpoint + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return apperrors.NewUpstreamError(service, 0, fmt.Sprintf("build request: %v", withoutURL(err)))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return apperrors.NewUpstreamTimeoutError(service, withoutURL(err))
		}
		return apperrors.NewUpstreamError(service, 0, withoutURL(err).Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewUpstreamError(service, resp.StatusCode, ParseErrorMessage(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewUpstreamError(service, resp.StatusCode, fmt.Sprintf("decode response: %v", err))
	}
	return nil
}

// ParseErrorMessage extracts the human readable message from the error body
// shapes used by Google APIs and OpenEPI. Unstructured bodies yield "".
func ParseErrorMessage(body []byte) string {
	var payload struct {
		Error        json.RawMessage `json:"error"`
		ErrorMessage string          `json:"error_message"`
		Detail       json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		var nested struct {
			Message string `json:"message"`
		}
		if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
			return nested.Message
		}
		var flat string
		if len(payload.Error) > 0 && json.Unmarshal(payload.Error, &flat) == nil && flat != "" {
			return flat
		}
		if payload.ErrorMessage != "" {
			return payload.ErrorMessage
		}
		if len(payload.Detail) > 0 && json.Unmarshal(payload.Detail, &flat) == nil && flat != "" {
			return flat
		}
	}
	return ""
}

// withoutURL drops the request URL from transport errors.
func withoutURL(err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperrors.CodeOf(err))
}
