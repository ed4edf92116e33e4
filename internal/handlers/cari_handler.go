package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// CariHandler cari HTTP isteklerini yönetir
type CariHandler struct {
	cariService interfaces.CariServiceInterface
}

// NewCariHandler yeni handler oluşturur
func NewCariHandler(cariService interfaces.CariServiceInterface) *CariHandler {
	return &CariHandler{cariService: cariService}
}

// Create yeni cari oluşturur
func (h *CariHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCariRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	cari, err := h.cariService.Create(&req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    cari,
		"message": "Cari oluşturuldu",
	})
}

// List filtrelenmiş cari listesini döner
func (h *CariHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &models.CariFilter{
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 20),
	}

	cariler, total, err := h.cariService.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Cari listesi getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Cariler alınamadı. Lütfen tekrar deneyin.")
		return
	}

	if cariler == nil {
		cariler = []*models.Cari{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"items": cariler,
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetByID ID ile cari getirir
func (h *CariHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz cari ID")
		return
	}

	cari, err := h.cariService.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Cari bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    cari,
	})
}

// Update cari bilgilerini günceller
func (h *CariHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz cari ID")
		return
	}

	var req models.UpdateCariRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	cari, err := h.cariService.Update(id, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    cari,
		"message": "Cari güncellendi",
	})
}

// Delete cariyi siler
func (h *CariHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz cari ID")
		return
	}

	if err := h.cariService.Delete(id); err != nil {
		errors.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cari silindi",
	})
}
