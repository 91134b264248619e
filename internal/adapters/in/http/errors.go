package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	messageValidationFailed = "Validation failed"
	messageUnavailable      = "Menu service unavailable, please try again later"
	messageUnexpected       = "Unexpected error"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ApiError is the body of every non-2xx response.
type ApiError struct { //nolint:revive // name kept stable for API clients
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Error     string       `json:"error"`
	Message   string       `json:"message"`
	Path      string       `json:"path"`
	Details   []FieldError `json:"details,omitempty"`
}

func newAPIError(c echo.Context, status int, message string, details []FieldError) ApiError {
	return ApiError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request().URL.Path,
		Details:   details,
	}
}

// classify maps an error returned by a handler to a status code, a client
// facing message and, for validation failures, per-field details.
func classify(err error) (int, string, []FieldError) {
	var (
		httpErr *echo.HTTPError
		refErr  *errs.ReferenceIsInvalidError
		nfErr   *errs.ObjectNotFoundError
		cErr    *errs.ConflictError
	)

	switch {
	case errors.As(err, &refErr):
		return http.StatusBadRequest, fmt.Sprintf("Invalid product ID: %v", refErr.Reference), nil
	case isValidation(err):
		return http.StatusBadRequest, messageValidationFailed, fieldErrors(err)
	case errors.As(err, &nfErr):
		return http.StatusNotFound, fmt.Sprintf("Order with id %v not found", nfErr.ID), nil
	case errors.As(err, &cErr):
		return http.StatusConflict, capitalize(cErr.Reason), nil
	case errors.Is(err, errs.ErrDependencyIsUnavailable):
		return http.StatusServiceUnavailable, messageUnavailable, nil
	case errors.As(err, &httpErr):
		return httpErr.Code, fmt.Sprint(httpErr.Message), nil
	default:
		return http.StatusInternalServerError, messageUnexpected, nil
	}
}

func isValidation(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

// fieldErrors flattens joined validation errors into one detail per field
// problem, in the order they were reported.
func fieldErrors(err error) []FieldError {
	var details []FieldError

	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) { //nolint:errorlint // walking the tree by hand
		case *errs.ValueIsRequiredError:
			details = append(details, FieldError{Field: e.ParamName, Message: "must not be blank"})
		case *errs.ValueIsInvalidError:
			msg := "is invalid"
			if e.Cause != nil {
				msg = e.Cause.Error()
			}
			details = append(details, FieldError{Field: e.ParamName, Message: msg})
		case *errs.ValueIsOutOfRangeError:
			details = append(details, FieldError{
				Field:   e.ParamName,
				Message: fmt.Sprintf("must be between %v and %v", e.Min, e.Max),
			})
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(e.Unwrap())
		}
	}
	walk(err)

	return details
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// errorHandler renders every error as an ApiError. Unexpected errors are
// logged with their cause and reported without it.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, details := classify(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Any("error", err),
			)
		}

		body := newAPIError(c, status, message, details)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", err))
		}
	}
}
