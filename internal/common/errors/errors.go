package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeConfiguration    ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeUpstream         ErrorCode = "UPSTREAM_ERROR"
	ErrCodeUpstreamTimeout  ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error value every gateway and worker returns. Details
// carries the diagnostic text for logs; it is never shown to a farmer.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
}

// Is matches on code so callers can write errors.Is(err, &StandardError{Code: ...}).
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func NewConfigurationError(component, missing string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   fmt.Sprintf("%s is not configured", component),
		Details:   fmt.Sprintf("missing: %s", missing),
		Metadata:  map[string]interface{}{"component": component},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError reports a transport failure (status 0) or a non-success
// HTTP response from an external service.
func NewUpstreamError(service string, status int, details string) *StandardError {
	msg := fmt.Sprintf("External service '%s' error", service)
	if status > 0 {
		msg = fmt.Sprintf("External service '%s' returned HTTP %d", service, status)
	}
	return &StandardError{
		Code:      ErrCodeUpstream,
		Message:   msg,
		Details:   details,
		Metadata:  map[string]interface{}{"service": service, "status": status},
		Timestamp: time.Now().UTC(),
	}
}

func NewUpstreamTimeoutError(service string, err error) *StandardError {
	details := "request exceeded its deadline"
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   details,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotFoundError is returned when geocoding yields no coordinates.
// status is the geocoder's own status string (ZERO_RESULTS and the like).
func NewLocationNotFoundError(place, status, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   fmt.Sprintf("Coordinates for '%s' were not found", place),
		Details:   strings.TrimSpace(status + " " + details),
		Metadata:  map[string]interface{}{"place": place, "status": status},
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(what, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("No %s found", what),
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid job input",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// AsStandard unwraps err into a StandardError, wrapping unknown errors as internal.
func AsStandard(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the code carried by err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return AsStandard(err).Code
}

func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// FarmerMessage renders err as a short apology suitable for the end user.
func FarmerMessage(err error) string {
	switch CodeOf(err) {
	case "":
		return ""
	case ErrCodeConfiguration:
		return "Sorry, this service is not set up correctly right now. Please try again later."
	case ErrCodeLocationNotFound:
		return "Sorry, I could not find that place. Could you share the nearest town or district name?"
	case ErrCodeNotFound:
		return "Sorry, I could not find reliable information for that right now."
	case ErrCodeInvalidInput:
		return "Sorry, I could not understand that request. Could you rephrase it?"
	default:
		return "Sorry, I could not retrieve the information right now. Please try again in a little while."
	}
}

// Failure is the typed failure value specialists place in their output
// instead of failing the job.
type Failure struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	stdErr := AsStandard(err)
	return &Failure{
		Code:    stdErr.Code,
		Message: FarmerMessage(stdErr),
		Details: stdErr.Details,
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfiguration:    "CONFIGURATION_ERROR",
	ErrCodeUpstream:         "UPSTREAM_ERROR",
	ErrCodeUpstreamTimeout:  "UPSTREAM_TIMEOUT",
	ErrCodeLocationNotFound: "LOCATION_NOT_FOUND",
	ErrCodeNotFound:         "NOT_FOUND",
	ErrCodeInvalidInput:     "INVALID_INPUT",
}

// GetRetryCount is zero for every code: external calls are made once and
// failures surface to the process instead of being retried.
func GetRetryCount(code ErrorCode) int {
	return 0
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: false,
		Retries:   GetRetryCount(stdErr.Code),
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"farmerMessage":     FarmerMessage(stdErr),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeConfiguration:
		return "CONFIGURATION"
	case ErrCodeUpstream, ErrCodeUpstreamTimeout:
		return "UPSTREAM"
	case ErrCodeLocationNotFound, ErrCodeNotFound:
		return "LOOKUP"
	case ErrCodeInvalidInput:
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
