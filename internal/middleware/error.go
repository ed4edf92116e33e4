package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/utils"
)

// RecoveryMiddleware centralized panic recovery. APIError panic'leri
// kendi status'larıyla, diğer her şey 500 ile JSON error body'ye
// çevrilir; caller'a asla stack trace dönmez.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				statusCode := http.StatusInternalServerError
				message := "Sunucu hatası. Bu durum teknik ekibimize bildirildi."

				switch err := recovered.(type) {
				case errors.APIError:
					statusCode = err.Status()
					message = err.Error()
					log.Warn().
						Str("error", err.Error()).
						Int("status_code", statusCode).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("API error yakalandı")

				case error:
					log.Error().
						Err(err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("client_ip", utils.GetClientIP(r)).
						Str("stack", string(debug.Stack())).
						Msg("🚨 Handler panic'ledi")

				default:
					log.Error().
						Interface("panic", recovered).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("stack", string(debug.Stack())).
						Msg("🚨 Handler panic'ledi")
				}

				errors.WriteError(w, statusCode, message)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
