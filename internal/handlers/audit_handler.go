package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// AuditLogHandler audit log HTTP isteklerini yönetir
type AuditLogHandler struct {
	auditService interfaces.AuditLogServiceInterface
}

// NewAuditLogHandler yeni handler oluşturur
func NewAuditLogHandler(auditService interfaces.AuditLogServiceInterface) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// List filtrelenmiş, sayfalanmış audit kayıtlarını döner
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &models.AuditLogFilter{
		Action:   r.URL.Query().Get("action"),
		Resource: r.URL.Query().Get("resource"),
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 0),
	}

	if userIDStr := r.URL.Query().Get("user_id"); userIDStr != "" {
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			errors.WriteAPIError(w, &errors.DogrulamaError{Message: "Geçersiz user_id parametresi", Field: "user_id"})
			return
		}
		filter.UserID = &userID
	}

	if startStr := r.URL.Query().Get("start_date"); startStr != "" {
		start, err := parseDateParam(startStr)
		if err != nil {
			errors.WriteAPIError(w, &errors.DogrulamaError{Message: "Geçersiz start_date parametresi", Field: "start_date"})
			return
		}
		filter.StartDate = &start
	}

	if endStr := r.URL.Query().Get("end_date"); endStr != "" {
		end, err := parseDateParam(endStr)
		if err != nil {
			errors.WriteAPIError(w, &errors.DogrulamaError{Message: "Geçersiz end_date parametresi", Field: "end_date"})
			return
		}
		filter.EndDate = &end
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		if !models.AuditSortable(sortBy) {
			errors.WriteAPIError(w, &errors.DogrulamaError{Message: "Geçersiz sort parametresi", Field: "sort"})
			return
		}
		filter.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order != "" {
		if order != "asc" && order != "desc" {
			errors.WriteAPIError(w, &errors.DogrulamaError{Message: "Geçersiz order parametresi", Field: "order"})
			return
		}
		filter.SortDir = order
	}

	page, err := h.auditService.List(filter)
	if err != nil {
		log.Error().Err(err).Msg("Audit kayıtları getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Kayıtlar alınamadı. Lütfen tekrar deneyin.")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Actions kayıtlı farklı action değerlerini döner
func (h *AuditLogHandler) Actions(w http.ResponseWriter, r *http.Request) {
	actions, err := h.auditService.Actions()
	if err != nil {
		log.Error().Err(err).Msg("Action değerleri getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Kayıtlar alınamadı. Lütfen tekrar deneyin.")
		return
	}

	if actions == nil {
		actions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"actions": actions})
}

// Resources kayıtlı farklı resource değerlerini döner
func (h *AuditLogHandler) Resources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.auditService.Resources()
	if err != nil {
		log.Error().Err(err).Msg("Resource değerleri getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Kayıtlar alınamadı. Lütfen tekrar deneyin.")
		return
	}

	if resources == nil {
		resources = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"resources": resources})
}

// parseDateParam RFC3339 veya gün formatını kabul eder
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
