package apperrors

import (
	"net/http"

	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard error response structure
type ErrorResponse struct {
	Error     string `json:"error"`                // Error code
	Message   string `json:"message"`              // Human-readable message
	Detail    string `json:"detail,omitempty"`     // Additional details
	RequestID string `json:"request_id,omitempty"` // Request ID for tracing
}

// HTTPErrorHandler returns an Echo error handler that uses structured logging
func HTTPErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		requestID := logger.GetRequestIDFromContext(c)
		reqLog := log.WithRequestID(requestID)

		var response ErrorResponse
		var status int

		if appErr, ok := AsAppError(err); ok {
			status = appErr.HTTPStatus
			response = ErrorResponse{
				Error:     appErr.Code,
				Message:   appErr.Message,
				Detail:    appErr.Detail,
				RequestID: requestID,
			}

			if status >= 500 {
				reqLog.Error("Internal error",
					appErr.Err,
					logger.String("error_code", appErr.Code),
					logger.String("message", appErr.Message),
				)
			} else {
				reqLog.Debug("Client error",
					logger.String("error_code", appErr.Code),
					logger.String("message", appErr.Message),
				)
			}
		} else if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(status)
			}
			response = ErrorResponse{
				Error:     "HTTP_ERROR",
				Message:   msg,
				RequestID: requestID,
			}

			if status >= 500 {
				reqLog.Error("HTTP error", nil, logger.Status(status), logger.String("message", msg))
			}
		} else {
			status = http.StatusInternalServerError
			response = ErrorResponse{
				Error:     ErrCodeUnexpectedError,
				Message:   "An unexpected error occurred",
				RequestID: requestID,
			}
			reqLog.Error("Unhandled error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
		} else {
			_ = c.JSON(status, response)
		}
	}
}

// RespondWithError is a helper to return an AppError response
func RespondWithError(c echo.Context, err *AppError) error {
	requestID := logger.GetRequestIDFromContext(c)
	return c.JSON(err.HTTPStatus, ErrorResponse{
		Error:     err.Code,
		Message:   err.Message,
		Detail:    err.Detail,
		RequestID: requestID,
	})
}
