package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-FacilityBooking/internal/api/handlers"
)

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter хранит отдельный лимитер на каждый IP клиента.
// Лимитеры IP, не появлявшихся дольше ttl, удаляются.
type IPRateLimiter struct {
	ips       map[string]*ipEntry
	mu        sync.Mutex
	r         rate.Limit
	b         int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewIPRateLimiter создает лимитер: r запросов в секунду, всплеск до b, забывание клиента через ttl
func NewIPRateLimiter(r rate.Limit, b int, ttl time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*ipEntry),
		r:         r,
		b:         b,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// GetLimiter возвращает лимитер IP, создавая его при первом обращении
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if i.ttl > 0 && now.Sub(i.lastSweep) >= i.ttl {
		i.sweep(now)
	}

	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipEntry{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Len количество отслеживаемых IP
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

func (i *IPRateLimiter) sweep(now time.Time) {
	for ip, entry := range i.ips {
		if now.Sub(entry.lastSeen) >= i.ttl {
			delete(i.ips, ip)
		}
	}
	i.lastSweep = now
}

// RateLimit отвечает 429, если клиент превысил лимит.
// ipHeader задает заголовок с адресом клиента, который выставляет доверенный шлюз;
// пустое значение означает адрес соединения.
func RateLimit(limiter *IPRateLimiter, ipHeader string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientIP(r, ipHeader)).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, ipHeader string) string {
	if ipHeader != "" {
		if ip := net.ParseIP(strings.TrimSpace(r.Header.Get(ipHeader))); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
