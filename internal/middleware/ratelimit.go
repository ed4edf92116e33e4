package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	SkipPaths         []string
}

// DefaultRateLimitConfig varsayılan rate limit ayarları
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 120,
		Burst:             20,
		SkipPaths: []string{
			"/health",
			"/favicon.ico",
		},
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware IP başına token-bucket rate limiting
type RateLimitMiddleware struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
}

// NewRateLimitMiddleware yeni rate limit middleware oluşturur
func NewRateLimitMiddleware(config *RateLimitConfig) *RateLimitMiddleware {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	rlm := &RateLimitMiddleware{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	go rlm.cleanupLimiters()

	return rlm
}

// Handler rate limiting middleware handler döner
func (rlm *RateLimitMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rlm.shouldSkipPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := utils.GetClientIP(r)

			if !rlm.allow(clientIP) {
				log.Warn().Str("client_ip", clientIP).Msg("Request blocked - rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(60))
				errors.WriteError(w, http.StatusTooManyRequests, "Çok fazla istek. Lütfen daha sonra tekrar deneyin.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allow IP'nin limiter'ından token tüketmeyi dener
func (rlm *RateLimitMiddleware) allow(ip string) bool {
	rlm.mutex.Lock()
	defer rlm.mutex.Unlock()

	limiter, exists := rlm.limiters[ip]
	if !exists {
		perSecond := rate.Limit(float64(rlm.config.RequestsPerMinute) / 60.0)
		limiter = &ipLimiter{
			limiter: rate.NewLimiter(perSecond, rlm.config.Burst),
		}
		rlm.limiters[ip] = limiter
	}
	limiter.lastSeen = time.Now()

	return limiter.limiter.Allow()
}

// shouldSkipPath path kontrolü
func (rlm *RateLimitMiddleware) shouldSkipPath(path string) bool {
	for _, skipPath := range rlm.config.SkipPaths {
		if path == skipPath {
			return true
		}
	}
	return false
}

// cleanupLimiters uzun süre görülmemiş IP'lerin limiter'larını temizler
func (rlm *RateLimitMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rlm.mutex.Lock()
		now := time.Now()
		for ip, limiter := range rlm.limiters {
			if now.Sub(limiter.lastSeen) > 30*time.Minute {
				delete(rlm.limiters, ip)
			}
		}
		log.Debug().Int("active_limiters", len(rlm.limiters)).Msg("Rate limiter cleanup completed")
		rlm.mutex.Unlock()
	}
}
