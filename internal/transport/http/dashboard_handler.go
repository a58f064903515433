package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "wodash/internal/errors"
	"wodash/internal/report"
)

// DashboardHandler exposes upload, report and export over the session's
// work-order table.
type DashboardHandler struct {
	service        DashboardService
	auth           AuthService
	validate       *validator.Validate
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardService, auth AuthService, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:        service,
		auth:           auth,
		validate:       validator.New(),
		logger:         logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the dashboard routes; all of them require a session.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(SessionCtx(h.auth))
	r.Post("/upload", h.Upload)
	r.Post("/report", h.Report)
	r.Get("/export", h.Export)
	return r
}

// Upload handles POST /api/dashboard/upload: a multipart form with the
// spreadsheet under the "file" field. On a load failure the session keeps
// its previous table.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		render.Render(w, r, apierrors.Unauthorized(r.URL.Path))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Missing Upload",
			`multipart field "file" with the spreadsheet is required`,
			r.URL.Path,
		))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Upload(r.Context(), sess, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// Report handles POST /api/dashboard/report with a FilterSpec body. An
// empty result renders as the designated empty state, not an error.
func (h *DashboardHandler) Report(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		render.Render(w, r, apierrors.Unauthorized(r.URL.Path))
		return
	}

	var spec report.FilterSpec
	if err := render.DecodeJSON(r.Body, &spec); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Invalid Filter",
			"Request body must be a JSON filter selection",
			r.URL.Path,
		))
		return
	}
	if err := h.validate.Struct(spec); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rep, err := h.service.Render(r.Context(), sess, spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, rep)
}

// Export handles GET /api/dashboard/export, streaming the rendered report
// as an xlsx workbook. Filters come from the query string: year, months,
// order_types, providers, user_statuses (comma separated).
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		render.Render(w, r, apierrors.Unauthorized(r.URL.Path))
		return
	}

	spec, err := filterSpecFromQuery(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Invalid Filter",
			err.Error(),
			r.URL.Path,
		))
		return
	}
	if err := h.validate.Struct(spec); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	buf, err := h.service.Export(r.Context(), sess, spec)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="wodash-report.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export stream interrupted",
			slog.String("error", err.Error()))
	}
}

func filterSpecFromQuery(q url.Values) (report.FilterSpec, error) {
	var spec report.FilterSpec

	if year := q.Get("year"); year != "" {
		v, err := strconv.Atoi(year)
		if err != nil {
			return spec, fmt.Errorf("year must be an integer: %q", year)
		}
		spec.Year = v
	}
	for _, m := range splitCSV(q.Get("months")) {
		v, err := strconv.Atoi(m)
		if err != nil {
			return spec, fmt.Errorf("months must be integers: %q", m)
		}
		spec.Months = append(spec.Months, v)
	}
	spec.OrderTypes = splitCSV(q.Get("order_types"))
	spec.Providers = splitCSV(q.Get("providers"))
	spec.UserStatuses = splitCSV(q.Get("user_statuses"))
	return spec, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
