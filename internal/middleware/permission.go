package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/authz"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
)

// RequirePermission verilen yetki kodu için route middleware'i üretir.
// AuthMiddleware'den sonra çalışmalıdır; context'te kullanıcı yoksa
// istek reddedilir (fail closed). Registry dışı bir kodla route
// kaydetmek programlama hatasıdır ve startup'ta panic'ler.
func RequirePermission(code authz.Code) func(http.Handler) http.Handler {
	if !authz.Known(code) {
		panic(fmt.Sprintf("tanımsız yetki kodu ile route kaydı: %q", code))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromRequest(r)
			if !ok {
				// AuthMiddleware eksik veya atlanmış: deny
				log.Error().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Str("permission", string(code)).
					Msg("Yetki kontrolü: kullanıcı bağlamı yok")
				errors.WriteAPIError(w, &errors.YetkiError{
					Message: "Bu işlem için yetkiniz bulunmuyor.",
					Code:    string(code),
				})
				return
			}

			subject := authz.NewSubject(claims.UserID, claims.IsSuperAdmin, claims.Permissions)
			decision := authz.Evaluate(subject, code)

			if !decision.Allowed {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("required_permission", string(code)).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Yetki kontrolü: erişim reddedildi")
				errors.WriteAPIError(w, &errors.YetkiError{
					Message:  "Bu işlem için yetkiniz bulunmuyor.",
					Code:     string(code),
					Resource: r.URL.Path,
				})
				return
			}

			if decision.SuperAdmin {
				// Bypass açıkça loglanır; audit trail'de de görünür
				log.Info().
					Int("user_id", claims.UserID).
					Str("permission", string(code)).
					Str("path", r.URL.Path).
					Msg("Yetki kontrolü: super-admin bypass")
			}

			next.ServeHTTP(w, r)
		})
	}
}
