package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/users/u-1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","full_name":"Ivan","phone":"+700","active":true}`))
	})
	mux.HandleFunc("/internal/users/u-blocked", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u-blocked","active":false}`))
	})
	mux.HandleFunc("/internal/users/u-broken", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	mux.HandleFunc("/internal/users/u-fail", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL+"/", time.Second, logger.NewDiscard())
	ctx := context.Background()

	user, err := client.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ivan", user.FullName)

	_, err = client.GetUser(ctx, "u-missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUser(ctx, "u-blocked")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = client.GetUser(ctx, "u-broken")
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUser(ctx, "u-fail")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewDiscard())

	_, err := client.GetUser(context.Background(), "u-1")
	assert.ErrorIs(t, err, ErrInternal)
}
