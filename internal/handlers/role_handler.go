package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/middleware/errors"
	"github.com/kobisoft/crm-api/internal/models"
)

// RoleHandler rol ve yetki yönetimi HTTP isteklerini yönetir
type RoleHandler struct {
	roleService interfaces.RoleServiceInterface
}

// NewRoleHandler yeni handler oluşturur
func NewRoleHandler(roleService interfaces.RoleServiceInterface) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// CreateRole yeni rol oluşturur
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	role, err := h.roleService.CreateRole(&req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    role,
		"message": "Rol oluşturuldu",
	})
}

// GetAllRoles tüm rolleri yetkileriyle listeler
func (h *RoleHandler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.GetAllRoles()
	if err != nil {
		log.Error().Err(err).Msg("Rol listesi getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Roller alınamadı. Lütfen tekrar deneyin.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    roles,
	})
}

// GetRole rolü yetkileriyle getirir
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz rol ID")
		return
	}

	role, err := h.roleService.GetRole(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, "Rol bulunamadı")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    role,
	})
}

// UpdateRole rol bilgilerini günceller
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz rol ID")
		return
	}

	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	role, err := h.roleService.UpdateRole(id, &req)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    role,
		"message": "Rol güncellendi",
	})
}

// DeleteRole rolü ve atamalarını siler
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz rol ID")
		return
	}

	if err := h.roleService.DeleteRole(id); err != nil {
		errors.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Rol silindi",
	})
}

// AssignPermission role yetki atar
func (h *RoleHandler) AssignPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz rol ID")
		return
	}

	var req models.AssignPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	if err := h.roleService.AssignPermission(id, req.Code); err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Yetki atandı",
	})
}

// RevokePermission rolden yetkiyi kaldırır
func (h *RoleHandler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz rol ID")
		return
	}

	code := mux.Vars(r)["code"]
	if err := h.roleService.RevokePermission(id, code); err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Yetki kaldırıldı",
	})
}

// AssignRole kullanıcıya rol atar
func (h *RoleHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	if err := h.roleService.AssignRole(req.UserID, req.RoleID); err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Rol atandı",
	})
}

// RevokeRole kullanıcıdan rolü kaldırır
func (h *RoleHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	var req models.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, "Geçersiz JSON formatı")
		return
	}

	if err := h.roleService.RevokeRole(req.UserID, req.RoleID); err != nil {
		errors.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Rol kaldırıldı",
	})
}

// GetAllPermissions tanımlı tüm yetki kodlarını listeler
func (h *RoleHandler) GetAllPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.roleService.GetAllPermissions()
	if err != nil {
		log.Error().Err(err).Msg("Yetki listesi getirilemedi")
		errors.WriteError(w, http.StatusInternalServerError, "Yetkiler alınamadı. Lütfen tekrar deneyin.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    permissions,
	})
}
