package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/auth"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
)

// ContextKey middleware'de context için key tipi
type ContextKey string

const UserContextKey ContextKey = "user"

// AuthMiddleware JWT token kontrolü yapar. Başarılı doğrulamada
// çözülmüş kullanıcı bağlamını (id, roller, yetkiler) request
// context'ine ekler; başarısızlıkta 401 ile kısa devre yapar ve
// downstream handler'lar hiç çalışmaz.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Authorization header eksik")
			errors.WriteAPIError(w, &errors.KimlikError{Message: "Yetkilendirme gerekli. Lütfen giriş yapın."})
			return
		}

		// "Bearer " prefix'ini kontrol et
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Warn().
				Str("path", r.URL.Path).
				Msg("Geçersiz Authorization format")
			errors.WriteAPIError(w, &errors.KimlikError{Message: "Authorization format: 'Bearer <token>'"})
			return
		}

		claims, err := auth.ValidateToken(tokenParts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Token doğrulama başarısız")
			errors.WriteAPIError(w, &errors.KimlikError{Message: "Geçersiz veya süresi dolmuş token"})
			return
		}

		// User bilgilerini context'e ekle
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		r = r.WithContext(ctx)

		log.Debug().
			Int("user_id", claims.UserID).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg("🔐 Authentication successful")

		next.ServeHTTP(w, r)
	})
}

// ClaimsFromRequest context'teki claims'i döner
func ClaimsFromRequest(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*auth.Claims)
	return claims, ok
}
