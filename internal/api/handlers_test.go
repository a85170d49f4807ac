package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/ticket-triage/internal/api"
	"github.com/jonesrussell/ticket-triage/internal/database"
	"github.com/jonesrussell/ticket-triage/internal/domain"
	"github.com/jonesrussell/ticket-triage/internal/telemetry"
)

type stubService struct {
	analysis domain.TicketAnalysis
	err      error
	calls    int
}

func (s *stubService) Process(_ context.Context, _ uuid.UUID, _ string) (domain.TicketAnalysis, error) {
	s.calls++
	return s.analysis, s.err
}

type stubStats struct {
	stats *database.Stats
	err   error
}

func (s *stubStats) GetStats(_ context.Context) (*database.Stats, error) {
	return s.stats, s.err
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func setupRouter(service *stubService, stats *stubStats, pinger *stubPinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := api.NewHandler(service, stats, pinger, nopLogger{}, "ticket-triage", "test")
	router := gin.New()
	api.SetupRoutes(router, handler, telemetry.NewProvider())
	return router
}

func postTicket(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/process-ticket", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestProcessTicket_Success(t *testing.T) {
	service := &stubService{
		analysis: domain.TicketAnalysis{Category: domain.CategoryBilling, Sentiment: domain.SentimentNegative},
	}
	router := setupRouter(service, &stubStats{}, &stubPinger{})

	ticketID := uuid.New()
	recorder := postTicket(t, router, gin.H{
		"ticket_id":   ticketID.String(),
		"description": "me cobraron dos veces",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp api.ProcessTicketResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, ticketID, resp.TicketID)
	assert.Equal(t, domain.CategoryBilling, resp.Category)
	assert.Equal(t, domain.SentimentNegative, resp.Sentiment)
	assert.True(t, resp.Processed)
	assert.Equal(t, 1, service.calls)
}

func TestProcessTicket_BadRequest(t *testing.T) {
	testCases := []struct {
		name string
		body any
	}{
		{name: "missing ticket_id", body: gin.H{"description": "algo"}},
		{name: "missing description", body: gin.H{"ticket_id": uuid.New().String()}},
		{name: "ticket_id not a UUID", body: gin.H{"ticket_id": "not-a-uuid", "description": "algo"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubService{}
			router := setupRouter(service, &stubStats{}, &stubPinger{})

			recorder := postTicket(t, router, tc.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, 0, service.calls)
		})
	}
}

func TestProcessTicket_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "validation error",
			serviceErr:     domain.NewValidationError("description is empty"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "ticket not found",
			serviceErr:     domain.NewNotFoundError("ticket not found"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "repository failure",
			serviceErr:     domain.WrapRepositoryError(errors.New("connection reset"), "update failed"),
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "classifiers exhausted",
			serviceErr:     domain.NewExternalServiceError("all classifiers failed"),
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "unknown error",
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubService{err: tc.serviceErr}, &stubStats{}, &stubPinger{})

			recorder := postTicket(t, router, gin.H{
				"ticket_id":   uuid.New().String(),
				"description": "ticket de prueba",
			})

			assert.Equal(t, tc.expectedStatus, recorder.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestProcessTicket_UnknownErrorIsOpaque(t *testing.T) {
	router := setupRouter(&stubService{err: errors.New("pq: deadlock detected")}, &stubStats{}, &stubPinger{})

	recorder := postTicket(t, router, gin.H{
		"ticket_id":   uuid.New().String(),
		"description": "ticket de prueba",
	})

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Error, "deadlock")
}

func TestGetStats(t *testing.T) {
	stats := &stubStats{
		stats: &database.Stats{
			TotalProcessed: 12,
			ByCategory:     map[string]int{"Tecnico": 7, "Facturacion": 5},
			BySentiment:    map[string]int{"Negativo": 8, "Neutral": 4},
		},
	}
	router := setupRouter(&stubService{}, stats, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp database.Stats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.TotalProcessed)
	assert.Equal(t, 7, resp.ByCategory["Tecnico"])
}

func TestGetStats_FailureReturnsEmptyStats(t *testing.T) {
	router := setupRouter(&stubService{}, &stubStats{err: errors.New("query timeout")}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp database.Stats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Zero(t, resp.TotalProcessed)
	assert.Empty(t, resp.ByCategory)
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter(&stubService{}, &stubStats{}, &stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "ticket-triage", resp["service"])
}

func TestReadyCheck(t *testing.T) {
	testCases := []struct {
		name           string
		pingErr        error
		expectedStatus int
	}{
		{name: "database reachable", pingErr: nil, expectedStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("dial tcp: refused"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(&stubService{}, &stubStats{}, &stubPinger{err: tc.pingErr})

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tc.expectedStatus, recorder.Code)
		})
	}
}
