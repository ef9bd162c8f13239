package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gutensearch/gutensearch/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeEmptyQuery     ErrorCode = "EMPTY_QUERY"
	ErrorCodeInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrorCodePatternTimeout ErrorCode = "PATTERN_TIMEOUT"
	ErrorCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	errorResponse := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}
	c.JSON(statusCode, errorResponse)
}

// SendEngineError maps a typed engine error onto the HTTP error surface.
func SendEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, internalErrors.ErrEmptyQuery):
		SendError(c, http.StatusBadRequest, ErrorCodeEmptyQuery, err.Error())
	case errors.Is(err, internalErrors.ErrInvalidPattern):
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidPattern, err.Error())
	case errors.Is(err, internalErrors.ErrPatternTimeout):
		SendError(c, http.StatusRequestTimeout, ErrorCodePatternTimeout, err.Error())
	case errors.Is(err, internalErrors.ErrNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeNotFound, err.Error())
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError, err.Error())
	}
}
