package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"wodash/internal/dataset"
	"wodash/internal/exporter"
	"wodash/internal/metrics"
	"wodash/internal/report"
	"wodash/internal/session"
)

// UploadResult summarizes a freshly loaded table for the client, including
// the distinct values that populate the filter widgets.
type UploadResult struct {
	Columns             []string        `json:"columns"`
	RowCount            int             `json:"row_count"`
	ComplianceAvailable bool            `json:"compliance_available"`
	Options             dataset.Options `json:"options"`
}

// DashboardService orchestrates the upload-filter-render cycle over the
// table held by a session.
type DashboardService struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewDashboardService creates the dashboard service. Metrics may be nil in
// tests.
func NewDashboardService(logger *slog.Logger, m *metrics.Metrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		logger:  logger.With(slog.String("component", "dashboard_service")),
		metrics: m,
	}
}

// Upload loads a spreadsheet and replaces the session's table. On a load
// failure the previous table is preserved and the error propagates with
// dataset.ErrLoad in its chain.
func (s *DashboardService) Upload(ctx context.Context, sess *session.Session, r io.Reader) (*UploadResult, error) {
	table, err := dataset.Load(r)
	if err != nil {
		if s.metrics != nil {
			s.metrics.UploadFailures.Inc()
		}
		s.logger.WarnContext(ctx, "upload rejected", slog.String("error", err.Error()))
		return nil, err
	}

	sess.SetTable(table)
	if s.metrics != nil {
		s.metrics.UploadsTotal.Inc()
		s.metrics.LoadedRows.Set(float64(len(table.Rows)))
	}
	s.logger.InfoContext(ctx, "table replaced",
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Columns)))

	return &UploadResult{
		Columns:             table.Columns,
		RowCount:            len(table.Rows),
		ComplianceAvailable: table.HasColumn(dataset.ColSystemStatus),
		Options:             table.FilterOptions(),
	}, nil
}

// Render computes the full dashboard for the session's table and the given
// filter selection. Returns ErrNoDataset before the first upload.
func (s *DashboardService) Render(ctx context.Context, sess *session.Session, spec report.FilterSpec) (*report.Report, error) {
	table := sess.Table()
	if table == nil {
		return nil, ErrNoDataset
	}

	start := time.Now()
	rep := report.Build(table, spec)
	if s.metrics != nil {
		s.metrics.RendersTotal.Inc()
		s.metrics.RenderSeconds.Observe(time.Since(start).Seconds())
		if rep.Empty {
			s.metrics.EmptyRenders.Inc()
		}
	}

	s.logger.DebugContext(ctx, "report rendered",
		slog.Int("detail_rows", len(rep.Detail)),
		slog.Bool("empty", rep.Empty),
		slog.Duration("elapsed", time.Since(start)))
	return rep, nil
}

// Export renders the dashboard for the given filters and writes it to an
// xlsx workbook.
func (s *DashboardService) Export(ctx context.Context, sess *session.Session, spec report.FilterSpec) (*bytes.Buffer, error) {
	rep, err := s.Render(ctx, sess, spec)
	if err != nil {
		return nil, err
	}
	return exporter.WriteReport(rep)
}
