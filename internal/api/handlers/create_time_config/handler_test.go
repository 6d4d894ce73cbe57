package create_time_config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs"
	"github.com/m04kA/SMC-FacilityBooking/internal/service/timeconfigs/models"
)

type fakeService struct {
	err error
	req *models.CreateTimeConfigRequest
}

func (f *fakeService) Create(_ context.Context, req *models.CreateTimeConfigRequest) (*models.TimeConfigResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.TimeConfigResponse{ID: 1, Name: req.Name, Type: req.Type}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/time-configs", strings.NewReader(body)))
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}

	rec := post(svc, `{"name":"night","type":"NOT_USE","startTime":"23:00","endTime":"05:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "night", svc.req.Name)
	assert.Equal(t, "23:00", svc.req.StartTime)
	assert.Nil(t, svc.req.Date)
}

func TestHandler_Errors(t *testing.T) {
	body := `{"name":"night","type":"NOT_USE","startTime":"23:00","endTime":"23:00"}`

	assert.Equal(t, http.StatusBadRequest, post(&fakeService{}, `{"name":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{err: fmt.Errorf("%w: empty window", timeconfigs.ErrInvalidInput)}, body).Code)
	assert.Equal(t, http.StatusInternalServerError, post(&fakeService{err: errors.New("boom")}, body).Code)
}
