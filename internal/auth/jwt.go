package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// JWT için secret key; main config'den Init ile set eder
var jwtSecret = []byte("change-this-in-production")

const tokenTTL = 24 * time.Hour

// Init imzalama anahtarını ayarlar
func Init(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// Claims JWT payload'ını temsil eder. Roller ve yetki kodları login
// sırasında çözülür; istek anında veritabanına gidilmez.
type Claims struct {
	UserID       int      `json:"user_id"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	Permissions  []string `json:"permissions"`
	IsSuperAdmin bool     `json:"is_super_admin"`
	jwt.RegisteredClaims
}

// GenerateToken kullanıcı için JWT token oluşturur
func GenerateToken(userID int, email string, roles, permissions []string, isSuperAdmin bool) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)

	claims := &Claims{
		UserID:       userID,
		Email:        email,
		Roles:        roles,
		Permissions:  permissions,
		IsSuperAdmin: isSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, nil
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("geçersiz token")
}

// RefreshToken süresi dolmuş token'dan yeni token üretir
func RefreshToken(tokenString string) (string, int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	// Token geçerliyse refresh gerekmiyor
	if err == nil && token.Valid {
		log.Warn().Msg("Token refresh denendi ama token hala geçerli")
		return "", 0, fmt.Errorf("token hala geçerli, refresh gerekmiyor")
	}

	if token == nil {
		log.Error().Err(err).Msg("Token parse edilemedi")
		return "", 0, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return "", 0, fmt.Errorf("token claims alınamadı")
		}

		newToken, genErr := GenerateToken(claims.UserID, claims.Email, claims.Roles, claims.Permissions, claims.IsSuperAdmin)
		if genErr != nil {
			log.Error().Err(genErr).Msg("Yeni token oluşturulamadı")
			return "", 0, fmt.Errorf("yeni token oluşturulamadı: %w", genErr)
		}

		log.Info().Int("user_id", claims.UserID).Msg("Token başarıyla refresh edildi")
		return newToken, int64(tokenTTL.Seconds()), nil
	}

	if errors.Is(err, jwt.ErrTokenMalformed) {
		log.Warn().Msg("Malformed token ile refresh denendi")
		return "", 0, fmt.Errorf("token malformed")
	}

	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		log.Warn().Msg("Invalid signature ile refresh denendi")
		return "", 0, fmt.Errorf("token signature invalid")
	}

	log.Error().Err(err).Msg("Token refresh başarısız")
	return "", 0, fmt.Errorf("token refresh edilemedi: %w", err)
}
