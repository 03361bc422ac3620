package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jadwalku/internal/config"
	"jadwalku/internal/models"
)

type stubLoader struct {
	data *models.ScheduleData
	err  error
}

func (l *stubLoader) Load(_ context.Context, _ time.Time) (*models.ScheduleData, error) {
	return l.data, l.err
}

func sampleData() *models.ScheduleData {
	data := models.NewScheduleData()
	data.AcademicSemester = models.AcademicSemester{Year: "2024/2025", Semester: "Genap"}
	data.Classes["C001"] = "X-A"
	data.Schedules.Data["C001"] = &models.EntitySchedule{
		Type:     models.EntityClass,
		Schedule: map[string]models.DaySchedule{},
	}
	return data
}

func newTestServer(t *testing.T, loader ScheduleLoader) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.SecretKey = "sekret"
	cfg.Server.Timezone = "Asia/Jakarta"
	logger := zerolog.Nop()
	s := New(cfg, loader, &logger)
	// Wednesday, mid-week.
	s.now = func() time.Time { return time.Date(2025, time.January, 8, 9, 0, 0, 0, time.UTC) }
	return s
}

func doRequest(s *Server, method, target, token string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestScheduleEndpointAuth(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})

	rec := doRequest(s, http.MethodGet, "/api/schedule", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to Authorize.")

	rec = doRequest(s, http.MethodGet, "/api/schedule", "wrong", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/schedule/view?id=C001", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScheduleEndpointRejectsEmptySecret(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	s.cfg.Server.SecretKey = ""

	rec := doRequest(s, http.MethodGet, "/api/schedule", "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScheduleEndpointMethod(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodPost, "/api/schedule", "sekret", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScheduleEndpointOK(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodGet, "/api/schedule", "sekret", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.ScheduleData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Genap", got.AcademicSemester.Semester)
	assert.Equal(t, "X-A", got.Classes["C001"])
}

func TestScheduleEndpointLoaderError(t *testing.T) {
	s := newTestServer(t, &stubLoader{err: errors.New("boom")})
	rec := doRequest(s, http.MethodGet, "/api/schedule", "sekret", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to build schedule")
}

func TestScheduleViewValidation(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})

	rec := doRequest(s, http.MethodGet, "/api/schedule/view", "sekret", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "id is required")

	rec = doRequest(s, http.MethodGet, "/api/schedule/view?id=C001&week=lastweek", "sekret", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "week must be this or next")
}

func TestScheduleViewOK(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})

	for _, week := range []string{"", "this", "next"} {
		target := "/api/schedule/view?id=C001"
		if week != "" {
			target += "&week=" + week
		}
		rec := doRequest(s, http.MethodGet, target, "sekret", nil)
		require.Equal(t, http.StatusOK, rec.Code, "week=%q", week)

		var view models.ComponentData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Len(t, view.Data, 7, "week=%q", week)
	}
}

func documentBody(t *testing.T, mutate func(*DocumentRequest)) []byte {
	t.Helper()
	isClass := true
	req := DocumentRequest{
		Timetable: []models.Timetable{{ID: "CS1", Periode: "07:00 - 08:00"}},
		Schedule: []models.DayDetail{{
			DayID:        "Senin",
			DayEN:        "Monday",
			Date:         6,
			FormatedDate: 20250106,
			Type:         models.DayActive,
			Timetables:   map[string]*models.ComponentSlot{},
		}},
		IsClass: &isClass,
	}
	req.PDFData.Title = "X-A"
	req.PDFData.Detail = "2024/2025 Genap"
	if mutate != nil {
		mutate(&req)
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestGeneratePDFValidation(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})

	tests := []struct {
		name   string
		body   []byte
		status int
	}{
		{"not json", []byte("{"), http.StatusBadRequest},
		{"missing title", documentBody(t, func(r *DocumentRequest) { r.PDFData.Title = "" }), http.StatusBadRequest},
		{"missing detail", documentBody(t, func(r *DocumentRequest) { r.PDFData.Detail = "" }), http.StatusBadRequest},
		{"missing is_class", documentBody(t, func(r *DocumentRequest) { r.IsClass = nil }), http.StatusBadRequest},
		{"empty schedule", documentBody(t, func(r *DocumentRequest) { r.Schedule = nil }), http.StatusBadRequest},
		{"empty timetable", documentBody(t, func(r *DocumentRequest) { r.Timetable = nil }), http.StatusBadRequest},
		{"valid", documentBody(t, nil), http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/generate-pdf", "", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusBadRequest {
				assert.Contains(t, rec.Body.String(), "Missing title or content")
			}
		})
	}
}

func TestGeneratePDFResponse(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodPost, "/api/generate-pdf", "", documentBody(t, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="Jadwal_X-A_2024/2025 Genap.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestGeneratePDFMethod(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodGet, "/api/generate-pdf", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExportExcelResponse(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodPost, "/api/export-excel", "", documentBody(t, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	// XLSX is a zip archive.
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestExportExcelValidation(t *testing.T) {
	s := newTestServer(t, &stubLoader{data: sampleData()})
	rec := doRequest(s, http.MethodPost, "/api/export-excel", "", documentBody(t, func(r *DocumentRequest) { r.Schedule = nil }))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing title or content")
}
