package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Upstream error types describe failures from external payment gateways.
// They carry the provider name so callers can tell which upstream produced them.
const (
	ErrorTypeUpstreamTimeout     ErrorType = "upstream_timeout"
	ErrorTypeUpstreamUnavailable ErrorType = "upstream_unavailable"
	ErrorTypeUpstreamRejected    ErrorType = "upstream_rejected"
)

// UpstreamError represents an error returned or caused by an external provider.
type UpstreamError struct {
	AppError
	Provider string `json:"provider"`
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Provider, e.AppError.Error())
}

// NewUpstreamTimeoutError creates an error for a timed out upstream request.
func NewUpstreamTimeoutError(provider, message string) *UpstreamError {
	return &UpstreamError{
		AppError: AppError{
			Type:    ErrorTypeUpstreamTimeout,
			Message: message,
			Code:    http.StatusRequestTimeout,
		},
		Provider: provider,
	}
}

// NewUpstreamUnavailableError creates an error for a failed upstream connection.
func NewUpstreamUnavailableError(provider, message string) *UpstreamError {
	return &UpstreamError{
		AppError: AppError{
			Type:    ErrorTypeUpstreamUnavailable,
			Message: message,
			Code:    http.StatusServiceUnavailable,
		},
		Provider: provider,
	}
}

// NewUpstreamRejectedError maps an upstream HTTP status to a stable internal error.
// 400 -> bad request, 401/403 -> credential/permission, 402 -> insufficient funds,
// 404 -> not found, 429 -> rate limited, 5xx -> upstream server error.
func NewUpstreamRejectedError(provider string, upstreamStatus int, message string) *UpstreamError {
	code := upstreamStatus
	switch {
	case upstreamStatus == http.StatusBadRequest:
		message = fmt.Sprintf("bad request: %s", message)
	case upstreamStatus == http.StatusUnauthorized:
		message = fmt.Sprintf("invalid API credentials: %s", message)
		code = http.StatusUnauthorized
	case upstreamStatus == http.StatusPaymentRequired:
		message = fmt.Sprintf("insufficient funds: %s", message)
	case upstreamStatus == http.StatusForbidden:
		message = "access denied - check API permissions"
	case upstreamStatus == http.StatusTooManyRequests:
		message = "rate limit exceeded - too many requests"
	case upstreamStatus >= 500:
		message = fmt.Sprintf("upstream server error: %s", message)
		code = http.StatusInternalServerError
	}

	return &UpstreamError{
		AppError: AppError{
			Type:    ErrorTypeUpstreamRejected,
			Message: message,
			Code:    code,
		},
		Provider: provider,
	}
}

// GetUpstreamError extracts an UpstreamError from err when present.
func GetUpstreamError(err error) *UpstreamError {
	var upErr *UpstreamError
	if stderrors.As(err, &upErr) {
		return upErr
	}
	return nil
}
