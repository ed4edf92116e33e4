package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// FinansHandler finans kayıt HTTP isteklerini yönetir
type FinansHandler struct {
	finansService interfaces.FinansServiceInterface
}

// NewFinansHandler yeni handler oluşturur
func NewFinansHandler(finansService interfaces.FinansServiceInterface) *FinansHandler {
	return &FinansHandler{finansService: finansService}
}

// Create yeni finans kaydı oluşturur
func (h *FinansHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.")
		return
	}

	var req models.CreateFinansKayitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	kayit, err := h.finansService.Create(claims.UserID, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    kayit,
		"message": "Finans kaydı oluşturuldu",
	})
}

// parseFinansFilter query parametrelerinden filtre kurar
func parseFinansFilter(r *http.Request) (*models.FinansFilter, error) {
	filter := &models.FinansFilter{
		Type:  r.URL.Query().Get("type"),
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	if cariIDStr := r.URL.Query().Get("cari_id"); cariIDStr != "" {
		cariID, err := strconv.Atoi(cariIDStr)
		if err != nil {
			return nil, err
		}
		filter.CariID = &cariID
	}
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := parseDateParam(fromStr)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := parseDateParam(toStr)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	return filter, nil
}

// List filtrelenmiş kayıtları döner
func (h *FinansHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFinansFilter(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz filtre parametresi")
		return
	}

	kayitlar, total, err := h.finansService.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Finans kayıtları getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Kayıtlar alınamadı. Lütfen tekrar deneyin.")
		return
	}

	if kayitlar == nil {
		kayitlar = []*models.FinansKayit{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"items": kayitlar,
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
		},
	})
}

// GetByID ID ile kayıt getirir
func (h *FinansHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz kayıt ID")
		return
	}

	kayit, err := h.finansService.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Finans kaydı bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    kayit,
	})
}

// Delete kaydı siler
func (h *FinansHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz kayıt ID")
		return
	}

	if err := h.finansService.Delete(id); err != nil {
		errors.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Finans kaydı silindi",
	})
}

// Ozet filtreye göre kasa özetini döner
func (h *FinansHandler) Ozet(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFinansFilter(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz filtre parametresi")
		return
	}

	ozet, err := h.finansService.Ozet(filter)
	if err != nil {
		log.Error().Err(err).Msg("Finans özeti getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Özet alınamadı. Lütfen tekrar deneyin.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ozet,
	})
}
