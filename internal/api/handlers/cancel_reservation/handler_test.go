package cancel_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/reservations"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/reservations/models"
)

type mockService struct {
	cancelledID int64
	gotReason   string
	err         error
}

func (m *mockService) Cancel(_ context.Context, id int64, req *models.CancelReservationRequest) error {
	if m.err != nil {
		return m.err
	}
	m.cancelledID = id
	m.gotReason = req.CancellationReason
	return nil
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Warn(format string, v ...interface{})  {}
func (l *recordingLogger) Error(format string, v ...interface{}) {}

func newRouter(svc ReservationService, log Logger) *mux.Router {
	r := mux.NewRouter()
	sub := r.PathPrefix("/api/v1").Subrouter()
	sub.Use(middleware.Auth)
	sub.HandleFunc("/reservations/{reservationId}/cancel",
		NewHandler(svc, log).Handle).Methods(http.MethodPatch)
	return r
}

func TestHandle_CancelLogsActingUser(t *testing.T) {
	svc := &mockService{}
	log := &recordingLogger{}
	router := newRouter(svc, log)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/77/cancel",
		strings.NewReader(`{"cancellationReason": "клиент отказался"}`))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(77), svc.cancelledID)
	assert.Equal(t, "клиент отказался", svc.gotReason)

	require.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "reservation_id=77")
	assert.Contains(t, log.lines[0], "user_id=42")
}

func TestHandle_CancelWithoutUserHeader(t *testing.T) {
	svc := &mockService{}
	router := newRouter(svc, &recordingLogger{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/77/cancel",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.cancelledID)
}

func TestHandle_CancelConflict(t *testing.T) {
	svc := &mockService{err: reservations.ErrCannotCancel}
	router := newRouter(svc, &recordingLogger{})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/77/cancel",
		strings.NewReader(`{}`))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
