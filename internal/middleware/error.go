package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trivia-api/internal/errs"
	"trivia-api/internal/logger"
)

// Status messages used in the failure envelope.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "resource not found"
	MsgMethodNotAllowed = "method not allowed"
	MsgUnprocessable    = "unprocessable"
	MsgInternal         = "internal server error"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// errorBody is the JSON envelope written for every failed request.
type errorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// BadRequest wraps a request decoding failure.
func BadRequest(err error) *AppError {
	return &AppError{Error: err, Message: MsgBadRequest, Code: http.StatusBadRequest}
}

// FromError maps an error from the service layer onto a status code by the
// sentinel it wraps. Unclassified errors become 500.
func FromError(err error) *AppError {
	switch {
	case errors.Is(err, errs.ErrEmptyResult),
		errors.Is(err, errs.ErrOutOfRange),
		errors.Is(err, errs.ErrNotFound):
		return &AppError{Error: err, Message: MsgNotFound, Code: http.StatusNotFound}
	case errors.Is(err, errs.ErrInvalidInput):
		return &AppError{Error: err, Message: MsgUnprocessable, Code: http.StatusUnprocessableEntity}
	default:
		return &AppError{Error: err, Message: MsgInternal, Code: http.StatusInternalServerError}
	}
}

// WriteError writes the failure envelope with the given status.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Error: code, Message: message})
}

// Error is a middleware that converts handler errors into JSON error responses.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					WriteError(w, http.StatusInternalServerError, MsgInternal)
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}

			fields := map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": appErr.Code,
			}
			if appErr.Code >= http.StatusInternalServerError {
				log.With(fields).Error(appErr.Error, appErr.Message)
			} else {
				log.With(fields).Debug(fmt.Sprintf("%s: %v", appErr.Message, appErr.Error))
			}
			WriteError(w, appErr.Code, appErr.Message)
		})
	}
}
