// internal/interfaces/service.go
package interfaces

import "github.com/kobisoft/crm-api/internal/models"

// UserServiceInterface kullanıcı business logic için interface
type UserServiceInterface interface {
	// Register yeni kullanıcı kaydeder
	Register(req *models.CreateUserRequest) (*models.User, error)

	// Login kullanıcı girişi yapar, yetkilerini çözer ve token döner
	Login(req *models.LoginRequest) (*models.LoginResponse, error)

	// GetUserByID ID ile kullanıcı getirir
	GetUserByID(userID int) (*models.User, error)

	// UpdateUser kullanıcı bilgilerini günceller
	UpdateUser(userID int, req *models.UpdateUserRequest) (*models.User, error)

	// DeleteUser kullanıcıyı siler
	DeleteUser(userID int) error

	// GetAllUsers tüm kullanıcıları listeler
	GetAllUsers(limit, offset int) ([]*models.User, int, error)
}

// RoleServiceInterface rol yönetimi business logic için interface
type RoleServiceInterface interface {
	CreateRole(req *models.CreateRoleRequest) (*models.Role, error)
	GetRole(id int) (*models.RoleWithPermissions, error)
	GetAllRoles() ([]*models.RoleWithPermissions, error)
	UpdateRole(id int, req *models.UpdateRoleRequest) (*models.Role, error)
	DeleteRole(id int) error
	AssignPermission(roleID int, code string) error
	RevokePermission(roleID int, code string) error
	AssignRole(userID, roleID int) error
	RevokeRole(userID, roleID int) error
	GetAllPermissions() ([]*models.Permission, error)
}

// AuditLogServiceInterface audit log sorguları için interface
type AuditLogServiceInterface interface {
	// List filtrelenmiş, sayfalanmış kayıtları döner
	List(filter *models.AuditLogFilter) (*models.AuditLogPage, error)

	// Actions kayıtlı farklı action değerlerini döner
	Actions() ([]string, error)

	// Resources kayıtlı farklı resource değerlerini döner
	Resources() ([]string, error)
}

// CariServiceInterface cari business logic için interface
type CariServiceInterface interface {
	Create(req *models.CreateCariRequest) (*models.Cari, error)
	GetByID(id int) (*models.Cari, error)
	List(filter *models.CariFilter) ([]*models.Cari, int, error)
	Update(id int, req *models.UpdateCariRequest) (*models.Cari, error)
	Delete(id int) error
}

// EtkinlikServiceInterface etkinlik business logic için interface
type EtkinlikServiceInterface interface {
	Create(createdBy int, req *models.CreateEtkinlikRequest) (*models.Etkinlik, error)
	GetByID(id int) (*models.Etkinlik, error)
	List(filter *models.EtkinlikFilter) ([]*models.Etkinlik, int, error)
	Update(id int, req *models.UpdateEtkinlikRequest) (*models.Etkinlik, error)
	Delete(id int) error
}

// FinansServiceInterface finans business logic için interface
type FinansServiceInterface interface {
	Create(recordedBy int, req *models.CreateFinansKayitRequest) (*models.FinansKayit, error)
	GetByID(id int) (*models.FinansKayit, error)
	List(filter *models.FinansFilter) ([]*models.FinansKayit, int, error)
	Delete(id int) error
	Ozet(filter *models.FinansFilter) (*models.FinansOzet, error)
}
