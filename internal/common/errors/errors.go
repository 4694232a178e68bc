// Package errors provides standardized error handling for the pitch composition API.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Request / Quota Errors
const (
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDocumentLevel ErrorCode = "INVALID_DOCUMENT_LEVEL"
	ErrCodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeQuotaCheckFailed     ErrorCode = "QUOTA_CHECK_FAILED"

	ErrCodeSectionPlanInvalid ErrorCode = "SECTION_PLAN_INVALID"
	ErrCodeRenderFailed       ErrorCode = "RENDER_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodePitchNotFound            ErrorCode = "PITCH_NOT_FOUND"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchIndexFailed             ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeRecipientInvalid       ErrorCode = "RECIPIENT_INVALID"

	ErrCodeProfileLookupTimeout ErrorCode = "PROFILE_LOOKUP_TIMEOUT"
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
// 2. HTTP Integration
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:              http.StatusBadRequest,
	ErrCodeInvalidDocumentLevel:          http.StatusBadRequest,
	ErrCodeRecipientInvalid:              http.StatusBadRequest,
	ErrCodeQuotaExceeded:                 http.StatusTooManyRequests,
	ErrCodePitchNotFound:                 http.StatusNotFound,
	ErrCodeQuotaCheckFailed:              http.StatusServiceUnavailable,
	ErrCodeDatabaseConnectionFailed:      http.StatusServiceUnavailable,
	ErrCodeElasticsearchConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeSectionPlanInvalid:            http.StatusInternalServerError,
	ErrCodeRenderFailed:                  http.StatusInternalServerError,
	ErrCodeQueryExecutionFailed:          http.StatusInternalServerError,
	ErrCodeQueryTimeout:                  http.StatusGatewayTimeout,
	ErrCodeDatabaseInsertFailed:          http.StatusInternalServerError,
	ErrCodeSearchIndexFailed:             http.StatusInternalServerError,
	ErrCodeSearchQueryFailed:             http.StatusInternalServerError,
	ErrCodeSearchTimeout:                 http.StatusGatewayTimeout,
	ErrCodeNotificationSendFailed:        http.StatusBadGateway,
	ErrCodeProfileLookupTimeout:          http.StatusGatewayTimeout,
}

// HTTPStatus returns the HTTP status code for an error code, defaulting to 500.
func HTTPStatus(code ErrorCode) int {
	if status, exists := HTTPStatusMapping[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 3. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable request validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidDocumentLevelError creates a non-retryable document level error.
func NewInvalidDocumentLevelError(level string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidDocumentLevel,
		Message:   "Unsupported document level",
		Details:   fmt.Sprintf("level: %s", level),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError creates a non-retryable quota error.
func NewQuotaExceededError(userID string, used, limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuotaExceeded,
		Message:   "Monthly pitch generation quota exceeded",
		Details:   fmt.Sprintf("userId: %s, used: %d, limit: %d", userID, used, limit),
		Retryable: false,
		Metadata: map[string]interface{}{
			"used":  used,
			"limit": limit,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaCheckFailedError creates a retryable quota backend error.
func NewQuotaCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuotaCheckFailed,
		Message:   "Quota backend error during usage check",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSectionPlanInvalidError creates a non-retryable skeleton configuration error.
// Numbering violations indicate a config defect and must surface, never degrade.
func NewSectionPlanInvalidError(level, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSectionPlanInvalid,
		Message:   "Section skeleton produced an invalid plan",
		Details:   fmt.Sprintf("level: %s, %s", level, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRenderFailedError creates a non-retryable render error.
func NewRenderFailedError(sectionID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "Section rendering failed",
		Details:   fmt.Sprintf("sectionId: %s, error: %s", sectionID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPitchNotFoundError creates a non-retryable not found error.
func NewPitchNotFoundError(pitchID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePitchNotFound,
		Message:   "Pitch record not found",
		Details:   fmt.Sprintf("pitchId: %s", pitchID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchIndexFailedError creates a retryable search index error.
func NewSearchIndexFailedError(pitchID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchIndexFailed,
		Message:   "Elasticsearch index operation failed",
		Details:   fmt.Sprintf("pitchId: %s, error: %s", pitchID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   "query exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecipientInvalidError creates a non-retryable recipient error.
func NewRecipientInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecipientInvalid,
		Message:   "Outreach recipient is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileLookupTimeoutError creates a non-retryable (returns empty) lookup timeout error.
func NewProfileLookupTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileLookupTimeout,
		Message:   "Business profile lookup timeout",
		Details:   "Lookup call exceeded 3 second timeout",
		Retryable: false, // Degrade with request-supplied values, don't retry
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "QUOTA"):
		return "QUOTA"
	case strings.Contains(codeStr, "SECTION") || strings.Contains(codeStr, "RENDER"):
		return "COMPOSER"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "PITCH_NOT_FOUND"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "RECIPIENT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "PROFILE"):
		return "ENRICHMENT"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
