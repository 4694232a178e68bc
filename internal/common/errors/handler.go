// internal/common/errors/handler.go
package errors

import (
	"errors"
	"time"
)

// ErrorHandler normalizes and logs request errors at a single chokepoint.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes any error to a StandardError, logs it, and returns
// the error plus the HTTP status a handler should respond with.
func (h *ErrorHandler) Handle(operation string, err error) (*StandardError, int) {
	stdErr := h.normalizeError(err)
	status := HTTPStatus(stdErr.Code)
	h.logError(operation, stdErr, status)
	return stdErr, status
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(operation string, stdErr *StandardError, status int) {
	h.logger.Error("Request failed", map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"httpStatus":    status,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
}
