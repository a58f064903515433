package http

import (
	"bytes"
	"context"
	"io"

	"wodash/internal/report"
	"wodash/internal/services"
	"wodash/internal/session"
)

// AuthService is the access-gate surface the handlers depend on.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*session.Session, error)
	Logout(ctx context.Context, token string)
	Authenticate(token string) (*session.Session, bool)
}

// DashboardService is the dashboard surface the handlers depend on.
type DashboardService interface {
	Upload(ctx context.Context, sess *session.Session, r io.Reader) (*services.UploadResult, error)
	Render(ctx context.Context, sess *session.Session, spec report.FilterSpec) (*report.Report, error)
	Export(ctx context.Context, sess *session.Session, spec report.FilterSpec) (*bytes.Buffer, error)
}
