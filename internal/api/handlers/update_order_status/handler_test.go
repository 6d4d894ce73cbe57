package update_order_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/orders/models"
)

type fakeService struct {
	err error
	req *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, id string, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderResponse{ID: id, Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patch(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/orders/{orderId}/status", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/o1/status", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), "admin"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}

	rec := patch(svc, `{"status":"PAID","comment":"card"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, "PAID", svc.req.Status)
	assert.Equal(t, "admin", svc.req.UserID)
	require.NotNil(t, svc.req.Comment)
	assert.Equal(t, "card", *svc.req.Comment)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad body", `{"status":`, nil, http.StatusBadRequest},
		{"not found", `{"status":"PAID"}`, orders.ErrOrderNotFound, http.StatusNotFound},
		{"invalid transition", `{"status":"NEW"}`, orders.ErrInvalidTransition, http.StatusConflict},
		{"invalid input", `{"status":"DONE"}`, orders.ErrInvalidInput, http.StatusBadRequest},
		{"internal", `{"status":"PAID"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, patch(&fakeService{err: tt.err}, tt.body).Code)
		})
	}
}
