package models

import "time"

// Role isimlendirilmiş yetki grubunu temsil eder.
// Rol adı sistem genelinde benzersizdir.
type Role struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Permission tek bir verilebilir aksiyonu temsil eden yetki kodu ("Yetki").
// Kod global olarak benzersizdir.
type Permission struct {
	ID          int       `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserRole kullanıcı-rol atama kaydı
type UserRole struct {
	UserID     int       `json:"user_id" db:"user_id"`
	RoleID     int       `json:"role_id" db:"role_id"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}

// RolePermission rol-yetki atama kaydı
type RolePermission struct {
	RoleID       int       `json:"role_id" db:"role_id"`
	PermissionID int       `json:"permission_id" db:"permission_id"`
	AssignedAt   time.Time `json:"assigned_at" db:"assigned_at"`
}

// RoleWithPermissions rolü atanmış yetki kodlarıyla birlikte döner
type RoleWithPermissions struct {
	Role
	Permissions []string `json:"permissions"`
}

// CreateRoleRequest rol oluşturma isteği
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateRoleRequest rol güncelleme isteği
type UpdateRoleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AssignPermissionRequest role yetki atama isteği
type AssignPermissionRequest struct {
	Code string `json:"code"`
}

// AssignRoleRequest kullanıcıya rol atama isteği
type AssignRoleRequest struct {
	UserID int `json:"user_id"`
	RoleID int `json:"role_id"`
}
