package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quorumflow-api/internal/application/report"
	"github.com/quorumflow-api/internal/domain"
)

type mockReportSvc struct{ mock.Mock }

func (m *mockReportSvc) GetAnswers(ctx context.Context, year int) (*domain.ReportAnswers, error) {
	args := m.Called(ctx, year)
	if a, _ := args.Get(0).(*domain.ReportAnswers); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportSvc) PutAnswers(ctx context.Context, year int, req domain.PutReportAnswersRequest) (*domain.ReportAnswers, error) {
	args := m.Called(ctx, year, req)
	if a, _ := args.Get(0).(*domain.ReportAnswers); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportSvc) Aggregate(ctx context.Context, year int) (*report.YearData, error) {
	args := m.Called(ctx, year)
	if d, _ := args.Get(0).(*report.YearData); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportSvc) Generate(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func newReportRouter(svc report.Service) http.Handler {
	h := NewReportHandler(svc)
	r := chi.NewRouter()
	r.Get("/v1/reports/answers/{year}", h.GetAnswers)
	r.Put("/v1/reports/answers/{year}", h.PutAnswers)
	r.Post("/v1/reports/annual", h.GenerateAnnual)
	return r
}

func TestGenerateAnnual_ReturnsBase64Contents(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("Generate", mock.Anything, 2025).Return("ZG9jeA==", nil)

	body := bytes.NewBufferString(`{"year":2025}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/reports/annual", body)
	rr := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.GenerateReportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ZG9jeA==", resp.FileContents)
	svc.AssertExpectations(t)
}

func TestGenerateAnnual_EmptyBodyDefaultsToCurrentYear(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("Generate", mock.Anything, 0).Return("ZG9jeA==", nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/reports/annual", nil)
	rr := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestGenerateAnnual_ServiceFailure(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("Generate", mock.Anything, 0).Return("", fmt.Errorf("render report: template corrupted"))

	req := httptest.NewRequest(http.MethodPost, "/v1/reports/annual", nil)
	rr := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetAnswers_InvalidYear(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/answers/abcd", nil)
	rr := httptest.NewRecorder()
	newReportRouter(&mockReportSvc{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPutAnswers_RoundTrip(t *testing.T) {
	svc := &mockReportSvc{}
	svc.On("PutAnswers", mock.Anything, 2025, domain.PutReportAnswersRequest{P1: "Creció el quórum"}).
		Return(&domain.ReportAnswers{Year: 2025, P1: "Creció el quórum"}, nil)

	body := bytes.NewBufferString(`{"p1":"Creció el quórum"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/reports/answers/2025", body)
	rr := httptest.NewRecorder()
	newReportRouter(svc).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp domain.ReportAnswers
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, "Creció el quórum", resp.P1)
}
