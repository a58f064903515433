package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wodash/internal/dataset"
	apierrors "wodash/internal/errors"
	"wodash/internal/report"
	"wodash/internal/services"
	"wodash/internal/session"
)

func newDashboardHandler(svc DashboardService, auth AuthService) *DashboardHandler {
	logger := testLogger()
	return NewDashboardHandler(svc, auth, 1<<20, logger, apierrors.NewErrorHandler(logger))
}

func authedMock(sess *session.Session) *MockAuthService {
	auth := new(MockAuthService)
	auth.On("Authenticate", "tok-1").Return(sess, true)
	auth.On("Authenticate", mock.Anything).Return(nil, false)
	return auth
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestDashboardHandler_RequiresSession(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	handler := newDashboardHandler(new(MockDashboardService), authedMock(sess))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{}`))
	handler.Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardHandler_Upload(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)
	svc.On("Upload", sess).Return(&services.UploadResult{
		RowCount: 2,
		Columns:  []string{"PROVIDER", "USER_STATUS"},
		Options:  dataset.Options{Providers: []string{"ACME"}},
	}, nil)

	body, contentType := multipartBody(t, "file", "orders.xlsx", []byte("fake-xlsx"))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp services.UploadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.RowCount)
	svc.AssertExpectations(t)
}

func TestDashboardHandler_UploadMissingFile(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)

	body, contentType := multipartBody(t, "wrong_field", "orders.xlsx", []byte("x"))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Upload")
}

func TestDashboardHandler_UploadLoadError(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)
	svc.On("Upload", sess).Return(nil, dataset.ErrLoad)

	body, contentType := multipartBody(t, "file", "orders.xlsx", []byte("garbage"))
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDashboardHandler_Report(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	spec := report.FilterSpec{Year: 2025, Months: []int{3}}
	svc := new(MockDashboardService)
	svc.On("Render", sess, spec).Return(&report.Report{
		Filter:  spec,
		Summary: &report.Summary{TotalOrders: 3},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"year":2025,"months":[3]}`))
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 3, rep.Summary.TotalOrders)
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ReportValidation(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"months":[13]}`))
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Render")
}

func TestDashboardHandler_ReportBeforeUpload(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)
	svc.On("Render", sess, mock.Anything).Return(nil, services.ErrNoDataset)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{}`))
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDashboardHandler_Export(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)
	want := report.FilterSpec{
		Year:       2025,
		Months:     []int{3, 4},
		Providers:  []string{"ACME"},
		OrderTypes: []string{"CORRECTIVE"},
	}
	svc.On("Export", sess, want).Return(bytes.NewBufferString("xlsx-bytes"), nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet,
		"/export?year=2025&months=3,4&providers=ACME&order_types=CORRECTIVE", nil)
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "wodash-report.xlsx")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
	svc.AssertExpectations(t)
}

func TestDashboardHandler_ExportBadQuery(t *testing.T) {
	sess := &session.Session{Token: "tok-1"}
	svc := new(MockDashboardService)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/export?year=MMXXV", nil)
	r.Header.Set("Authorization", "Bearer tok-1")

	newDashboardHandler(svc, authedMock(sess)).Routes().ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Export")
}
