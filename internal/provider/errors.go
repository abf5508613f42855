package provider

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a provider failure.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
)

// ProviderError wraps a transport or API failure with enough context for
// the caller to decide whether to retry.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// IsRetryable reports whether err is a retryable provider failure.
func IsRetryable(err error) bool {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}
	return false
}
