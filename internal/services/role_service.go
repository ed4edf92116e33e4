package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kobisoft/crm-api/internal/authz"
	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// RoleService rol ve yetki yönetimi business logic'i
type RoleService struct {
	roleRepo interfaces.RoleRepositoryInterface
}

// NewRoleService yeni service oluşturur
func NewRoleService(roleRepo interfaces.RoleRepositoryInterface) interfaces.RoleServiceInterface {
	return &RoleService{roleRepo: roleRepo}
}

// CreateRole yeni rol oluşturur
func (s *RoleService) CreateRole(req *models.CreateRoleRequest) (*models.Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("rol adı zorunludur")
	}

	role, err := s.roleRepo.CreateRole(req)
	if err != nil {
		return nil, err
	}

	log.Info().Int("role_id", role.ID).Str("name", role.Name).Msg("Yeni rol oluşturuldu")
	return role, nil
}

// GetRole rolü yetkileriyle getirir
func (s *RoleService) GetRole(id int) (*models.RoleWithPermissions, error) {
	return s.roleRepo.GetRoleByID(id)
}

// GetAllRoles tüm rolleri listeler
func (s *RoleService) GetAllRoles() ([]*models.RoleWithPermissions, error) {
	return s.roleRepo.GetAllRoles()
}

// UpdateRole rol bilgilerini günceller
func (s *RoleService) UpdateRole(id int, req *models.UpdateRoleRequest) (*models.Role, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("rol adı boş olamaz")
	}
	return s.roleRepo.UpdateRole(id, req)
}

// DeleteRole rolü ve atamalarını siler
func (s *RoleService) DeleteRole(id int) error {
	if err := s.roleRepo.DeleteRole(id); err != nil {
		return err
	}

	log.Info().Int("role_id", id).Msg("Rol ve atamaları silindi")
	return nil
}

// AssignPermission role yetki atar; kod registry'de tanımlı olmalıdır
func (s *RoleService) AssignPermission(roleID int, code string) error {
	if !authz.Known(authz.Code(code)) {
		return fmt.Errorf("tanımsız yetki kodu: %s", code)
	}
	return s.roleRepo.AssignPermission(roleID, code)
}

// RevokePermission rolden yetkiyi kaldırır
func (s *RoleService) RevokePermission(roleID int, code string) error {
	return s.roleRepo.RevokePermission(roleID, code)
}

// AssignRole kullanıcıya rol atar
func (s *RoleService) AssignRole(userID, roleID int) error {
	return s.roleRepo.AssignRole(userID, roleID)
}

// RevokeRole kullanıcıdan rolü kaldırır
func (s *RoleService) RevokeRole(userID, roleID int) error {
	return s.roleRepo.RevokeRole(userID, roleID)
}

// GetAllPermissions tanımlı tüm yetkileri listeler
func (s *RoleService) GetAllPermissions() ([]*models.Permission, error) {
	return s.roleRepo.GetAllPermissions()
}
