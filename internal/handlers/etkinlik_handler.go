package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// EtkinlikHandler etkinlik HTTP isteklerini yönetir
type EtkinlikHandler struct {
	etkinlikService interfaces.EtkinlikServiceInterface
}

// NewEtkinlikHandler yeni handler oluşturur
func NewEtkinlikHandler(etkinlikService interfaces.EtkinlikServiceInterface) *EtkinlikHandler {
	return &EtkinlikHandler{etkinlikService: etkinlikService}
}

// Create yeni etkinlik oluşturur
func (h *EtkinlikHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.")
		return
	}

	var req models.CreateEtkinlikRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	etkinlik, err := h.etkinlikService.Create(claims.UserID, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    etkinlik,
		"message": "Etkinlik oluşturuldu",
	})
}

// List tarih aralığına göre etkinlikleri listeler
func (h *EtkinlikHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &models.EtkinlikFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := parseDateParam(fromStr)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, "Geçersiz from parametresi")
			return
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := parseDateParam(toStr)
		if err != nil {
			errors.WriteError(w, http.StatusBadRequest, "Geçersiz to parametresi")
			return
		}
		filter.To = &to
	}

	etkinlikler, total, err := h.etkinlikService.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Etkinlik listesi getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Etkinlikler alınamadı. Lütfen tekrar deneyin.")
		return
	}

	if etkinlikler == nil {
		etkinlikler = []*models.Etkinlik{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"items": etkinlikler,
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetByID ID ile etkinlik getirir
func (h *EtkinlikHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz etkinlik ID")
		return
	}

	etkinlik, err := h.etkinlikService.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Etkinlik bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    etkinlik,
	})
}

// Update etkinlik bilgilerini günceller
func (h *EtkinlikHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz etkinlik ID")
		return
	}

	var req models.UpdateEtkinlikRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	etkinlik, err := h.etkinlikService.Update(id, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    etkinlik,
		"message": "Etkinlik güncellendi",
	})
}

// Delete etkinliği siler
func (h *EtkinlikHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz etkinlik ID")
		return
	}

	if err := h.etkinlikService.Delete(id); err != nil {
		errors.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Etkinlik silindi",
	})
}
