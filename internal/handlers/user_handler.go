package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/auth"
	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// UserHandler kullanıcı HTTP isteklerini yönetir
type UserHandler struct {
	userService interfaces.UserServiceInterface
}

// NewUserHandler yeni handler oluşturur
func NewUserHandler(userService interfaces.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register yeni kullanıcı kaydı (public)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    user,
		"message": "Kullanıcı başarıyla oluşturuldu",
	})
}

// Login kullanıcı girişi (public)
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("Başarısız giriş denemesi")
		errors.WriteError(w, http.StatusUnauthorized, "Email veya şifre hatalı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    resp,
		"message": "Giriş başarılı",
	})
}

// Refresh süresi dolmuş token'ı yeniler (public)
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		errors.WriteError(w, http.StatusUnauthorized, "Authorization format: 'Bearer <token>'")
		return
	}

	newToken, expiresIn, err := auth.RefreshToken(tokenParts[1])
	if err != nil {
		errors.WriteError(w, http.StatusUnauthorized, "Token yenilenemedi")
		return
	}

	writeJSON(w, http.StatusOK, &models.RefreshResponse{
		Success:   true,
		Token:     newToken,
		ExpiresIn: expiresIn,
		Message:   "Token başarıyla yenilendi",
	})
}

// GetProfile giriş yapmış kullanıcının profili
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.")
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Kullanıcı bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}

// GetAllUsers tüm kullanıcıları listeler
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	users, total, err := h.userService.GetAllUsers(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Kullanıcı listesi getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Kullanıcılar alınamadı. Lütfen tekrar deneyin.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"users":  users,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetUserByID ID ile kullanıcı getirir
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz kullanıcı ID")
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Kullanıcı bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
	})
}

// UpdateUser kullanıcı bilgilerini günceller
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz kullanıcı ID")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    user,
		"message": "Kullanıcı güncellendi",
	})
}

// DeleteUser kullanıcıyı siler
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz kullanıcı ID")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		errors.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Kullanıcı silindi",
	})
}
