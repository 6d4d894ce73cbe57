package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-FacilityBooking/pkg/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	w.Header().Set("X-Seen-User", userID)
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	h := Auth(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/orders/o1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders/o1", nil)
	req.Header.Set(HeaderUserID, "user-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-Seen-User"))
}

func TestRateLimit(t *testing.T) {
	r := mux.NewRouter()
	r.Use(RateLimit(NewIPRateLimiter(rate.Limit(0.001), 2, time.Minute), ""))
	r.HandleFunc("/orders", okHandler).Methods(http.MethodPost)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// другой клиент имеет свой лимит
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_SpoofedForwardedForIgnored(t *testing.T) {
	r := mux.NewRouter()
	r.Use(RateLimit(NewIPRateLimiter(rate.Limit(0.001), 1, time.Minute), ""))
	r.HandleFunc("/orders", okHandler).Methods(http.MethodPost)

	codes := make([]int, 0, 2)
	for _, fwd := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fwd)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(rate.Limit(1), 1, time.Minute)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	first := limiter.GetLimiter("10.0.0.1")
	second := limiter.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, limiter.Len())
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))

	now = now.Add(30 * time.Second)
	limiter.GetLimiter("10.0.0.1")

	now = now.Add(45 * time.Second)
	limiter.GetLimiter("10.0.0.3")

	// 10.0.0.2 простаивал дольше минуты
	assert.Equal(t, 2, limiter.Len())
	assert.NotSame(t, second, limiter.GetLimiter("10.0.0.2"))
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "10.0.0.1", clientIP(req, ""))

	req.Header.Set("X-Real-IP", "203.0.113.8")
	assert.Equal(t, "203.0.113.8", clientIP(req, "X-Real-IP"))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "10.0.0.1", clientIP(req, "X-Real-IP"))
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/o1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/o2", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{orderId}", "404")))
}
