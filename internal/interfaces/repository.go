// internal/interfaces/repository.go
package interfaces

import (
	"github.com/kobisoft/crm-api/internal/models"
)

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur (şifre hash'lenmiş gelir)
	Create(req *models.CreateUserRequest) (*models.User, error)

	// GetByEmail email ile kullanıcı bulur
	GetByEmail(email string) (*models.User, error)

	// GetByID ID ile kullanıcı bulur
	GetByID(id int) (*models.User, error)

	// Update kullanıcı bilgilerini günceller
	Update(id int, req *models.UpdateUserRequest) (*models.User, error)

	// Delete kullanıcıyı siler
	Delete(id int) error

	// GetAll tüm kullanıcıları listeler (pagination ile)
	GetAll(limit, offset int) ([]*models.User, int, error)
}

// RoleRepositoryInterface rol ve yetki atama işlemleri için interface
type RoleRepositoryInterface interface {
	// CreateRole yeni rol oluşturur (rol adı benzersiz)
	CreateRole(req *models.CreateRoleRequest) (*models.Role, error)

	// GetRoleByID rolü atanmış yetkileriyle getirir
	GetRoleByID(id int) (*models.RoleWithPermissions, error)

	// GetRoleByName isim ile rol bulur
	GetRoleByName(name string) (*models.Role, error)

	// GetAllRoles tüm rolleri yetkileriyle listeler
	GetAllRoles() ([]*models.RoleWithPermissions, error)

	// UpdateRole rol bilgilerini günceller
	UpdateRole(id int, req *models.UpdateRoleRequest) (*models.Role, error)

	// DeleteRole rolü ve tüm atamalarını siler (cascade)
	DeleteRole(id int) error

	// AssignPermission role yetki atar
	AssignPermission(roleID int, code string) error

	// RevokePermission rolden yetkiyi kaldırır
	RevokePermission(roleID int, code string) error

	// AssignRole kullanıcıya rol atar
	AssignRole(userID, roleID int) error

	// RevokeRole kullanıcıdan rolü kaldırır
	RevokeRole(userID, roleID int) error

	// GetUserAccess kullanıcının rol adlarını ve efektif yetki kodlarını çözer
	GetUserAccess(userID int) (roles []string, permissions []string, err error)

	// GetAllPermissions tanımlı tüm yetkileri listeler
	GetAllPermissions() ([]*models.Permission, error)

	// SeedPermissions registry'deki kodları permissions tablosuna ekler (idempotent)
	SeedPermissions(codes map[string]string) error
}

// AuditLogRepositoryInterface audit log store işlemleri için interface
type AuditLogRepositoryInterface interface {
	// Create yeni audit kaydı ekler (append-only)
	Create(entry *models.AuditLog) error

	// List filtrelenmiş, sayfalanmış kayıtları ve toplam sayıyı döner
	List(filter *models.AuditLogFilter) ([]*models.AuditLog, int, error)

	// DistinctActions kayıtlı farklı action değerlerini döner
	DistinctActions() ([]string, error)

	// DistinctResources kayıtlı farklı resource değerlerini döner
	DistinctResources() ([]string, error)
}

// CariRepositoryInterface cari database işlemleri için interface
type CariRepositoryInterface interface {
	Create(req *models.CreateCariRequest) (*models.Cari, error)
	GetByID(id int) (*models.Cari, error)
	List(filter *models.CariFilter) ([]*models.Cari, int, error)
	Update(id int, req *models.UpdateCariRequest) (*models.Cari, error)
	Delete(id int) error
}

// EtkinlikRepositoryInterface etkinlik database işlemleri için interface
type EtkinlikRepositoryInterface interface {
	Create(createdBy int, req *models.CreateEtkinlikRequest) (*models.Etkinlik, error)
	GetByID(id int) (*models.Etkinlik, error)
	List(filter *models.EtkinlikFilter) ([]*models.Etkinlik, int, error)
	Update(id int, req *models.UpdateEtkinlikRequest) (*models.Etkinlik, error)
	Delete(id int) error
}

// FinansRepositoryInterface finans kayıt işlemleri için interface
type FinansRepositoryInterface interface {
	Create(recordedBy int, req *models.CreateFinansKayitRequest) (*models.FinansKayit, error)
	GetByID(id int) (*models.FinansKayit, error)
	List(filter *models.FinansFilter) ([]*models.FinansKayit, int, error)
	Delete(id int) error
	Ozet(filter *models.FinansFilter) (*models.FinansOzet, error)
}
