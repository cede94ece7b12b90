// Package errors provides standardized error handling for the
// matching pipeline and its external boundaries.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDirectoryQueryFailed ErrorCode = "DIRECTORY_QUERY_FAILED"
	ErrCodeDirectoryTimeout     ErrorCode = "DIRECTORY_TIMEOUT"
	ErrCodeMentorFetchFailed    ErrorCode = "MENTOR_FETCH_FAILED"
	ErrCodeMentorIndexFailed    ErrorCode = "MENTOR_INDEX_FAILED"

	ErrCodeMentorNotFound ErrorCode = "MENTOR_NOT_FOUND"

	ErrCodeMatchPersistFailed ErrorCode = "MATCH_PERSIST_FAILED"
	ErrCodeMatchNotFound      ErrorCode = "MATCH_NOT_FOUND"

	ErrCodeInvalidFunctionArgs ErrorCode = "INVALID_FUNCTION_ARGS"
	ErrCodeRunPollFailed       ErrorCode = "RUN_POLL_FAILED"
	ErrCodeResultSubmitFailed  ErrorCode = "RESULT_SUBMIT_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewDirectoryQueryFailedError creates a retryable directory query error.
func NewDirectoryQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryQueryFailed,
		Message:   "Candidate directory query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryTimeoutError creates a retryable directory timeout error.
func NewDirectoryTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryTimeout,
		Message:   "Candidate directory query timeout",
		Details:   "directory query exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorFetchFailedError creates a retryable mentor fetch error.
func NewMentorFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorFetchFailed,
		Message:   "Mentor snapshot fetch error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorIndexFailedError creates a retryable mentor indexing error.
func NewMentorIndexFailedError(mentorID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorIndexFailed,
		Message:   "Mentor document indexing failed",
		Details:   fmt.Sprintf("mentorId: %s, error: %s", mentorID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorNotFoundError creates a non-retryable lookup error.
func NewMentorNotFoundError(mentorID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorNotFound,
		Message:   "Mentor not found",
		Details:   fmt.Sprintf("mentorId: %s", mentorID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchPersistFailedError creates a retryable result-store write error.
// The pipeline itself never retries; the flag is caller guidance.
func NewMatchPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchPersistFailed,
		Message:   "Match result insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchNotFoundError creates a non-retryable lookup error.
func NewMatchNotFoundError(matchResultID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchNotFound,
		Message:   "Match result not found",
		Details:   fmt.Sprintf("matchResultId: %s", matchResultID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFunctionArgsError creates a non-retryable argument error.
// At the trigger boundary this is converted to a success:false outcome
// rather than propagated.
func NewInvalidFunctionArgsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFunctionArgs,
		Message:   "Malformed function-call arguments",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRunPollFailedError creates a retryable run poll error.
func NewRunPollFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRunPollFailed,
		Message:   "Conversational run status poll failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResultSubmitFailedError creates a retryable result submit error.
func NewResultSubmitFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResultSubmitFailed,
		Message:   "Function result submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// knownCodes lists every code in prefix-match order for FromError.
var knownCodes = []ErrorCode{
	ErrCodeDirectoryQueryFailed,
	ErrCodeDirectoryTimeout,
	ErrCodeMentorFetchFailed,
	ErrCodeMentorIndexFailed,
	ErrCodeMentorNotFound,
	ErrCodeMatchPersistFailed,
	ErrCodeMatchNotFound,
	ErrCodeInvalidFunctionArgs,
	ErrCodeRunPollFailed,
	ErrCodeResultSubmitFailed,
}

// FromError resolves any pipeline error to its standard form. A
// StandardError passes through; sentinel-wrapped errors are matched by
// their leading code; anything else becomes a non-retryable internal
// error.
func FromError(err error) *StandardError {
	if err == nil {
		return nil
	}

	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	msg := err.Error()
	for _, code := range knownCodes {
		if strings.HasPrefix(msg, string(code)) {
			return &StandardError{
				Code:      code,
				Message:   strings.ReplaceAll(strings.ToLower(string(code)), "_", " "),
				Details:   msg,
				Retryable: IsRetryableErrorCode(code),
				Timestamp: time.Now().UTC(),
			}
		}
	}

	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Internal error",
		Details:   msg,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for callers that
// layer a retry policy on top of the engine.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDirectoryQueryFailed,
		ErrCodeMentorFetchFailed,
		ErrCodeMentorIndexFailed,
		ErrCodeMatchPersistFailed,
		ErrCodeRunPollFailed,
		ErrCodeResultSubmitFailed:
		return 3

	case ErrCodeDirectoryTimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DIRECTORY") || strings.Contains(codeStr, "MENTOR"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "MATCH"):
		return "STORE"
	case strings.Contains(codeStr, "RUN") || strings.Contains(codeStr, "RESULT") || strings.Contains(codeStr, "FUNCTION"):
		return "CONVERSATION"
	case strings.Contains(codeStr, "TIMEOUT"):
		return "TIMEOUT"
	default:
		return "OTHER"
	}
}
