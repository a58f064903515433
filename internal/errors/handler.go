package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"wodash/internal/dataset"
	"wodash/internal/services"
)

// ErrorHandler provides centralized error handling: every error leaving a
// handler is logged once and rendered as a problem document.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	render.Render(w, r, h.ErrorToProblem(err, r))
}

// ErrorToProblem maps domain errors onto RFC 7807 problem details.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	var problem *ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field())
		}
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Validation Failed",
			"One or more filter fields are out of range",
			r.URL.Path,
		).WithExtension("fields", fields)
	}

	switch {
	case errors.Is(err, dataset.ErrLoad):
		// Load failures carry their cause; the previous table stays intact.
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeLoad,
			"Invalid Workbook",
			err.Error(),
			r.URL.Path,
		)
	case errors.Is(err, services.ErrNoDataset):
		return NewProblemDetails(
			http.StatusConflict,
			TypeNoDataset,
			"No Dataset Uploaded",
			"Upload a spreadsheet before requesting a report",
			r.URL.Path,
		)
	case errors.Is(err, services.ErrInvalidCredentials):
		return NewProblemDetails(
			http.StatusUnauthorized,
			TypeUnauthorized,
			"Invalid Credentials",
			"Username or password is incorrect",
			r.URL.Path,
		)
	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred",
			r.URL.Path,
		)
	}
}

// Unauthorized is the problem rendered by the session middleware for
// missing or unknown tokens.
func Unauthorized(instance string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusUnauthorized,
		TypeUnauthorized,
		"Authentication Required",
		"A valid session token is required",
		instance,
	)
}

// RateLimited is the problem rendered when the request budget is exhausted.
func RateLimited(instance string) *ProblemDetails {
	return NewProblemDetails(
		http.StatusTooManyRequests,
		TypeRateLimit,
		"Rate Limit Exceeded",
		"Too many requests, retry shortly",
		instance,
	)
}
