package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// RoleRepository rol, yetki ve atama işlemleri
type RoleRepository struct {
	db *sql.DB
}

// NewRoleRepository yeni repository oluşturur
func NewRoleRepository(db *sql.DB) interfaces.RoleRepositoryInterface {
	return &RoleRepository{db: db}
}

// CreateRole yeni rol oluşturur; rol adı unique constraint ile korunur
func (r *RoleRepository) CreateRole(req *models.CreateRoleRequest) (*models.Role, error) {
	query := `
		INSERT INTO roles (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, created_at
	`

	var role models.Role
	err := r.db.QueryRow(query, req.Name, req.Description).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("bu isimde bir rol zaten var")
		}
		return nil, fmt.Errorf("rol oluşturulamadı: %w", err)
	}

	return &role, nil
}

// GetRoleByID rolü atanmış yetki kodlarıyla getirir
func (r *RoleRepository) GetRoleByID(id int) (*models.RoleWithPermissions, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at,
		       COALESCE(array_agg(p.code) FILTER (WHERE p.code IS NOT NULL), '{}')
		FROM roles r
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE r.id = $1
		GROUP BY r.id
	`

	var role models.RoleWithPermissions
	err := r.db.QueryRow(query, id).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
		pq.Array(&role.Permissions),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rol bulunamadı")
		}
		return nil, fmt.Errorf("rol arama hatası: %w", err)
	}

	return &role, nil
}

// GetRoleByName isim ile rol bulur
func (r *RoleRepository) GetRoleByName(name string) (*models.Role, error) {
	query := `SELECT id, name, description, created_at FROM roles WHERE name = $1`

	var role models.Role
	err := r.db.QueryRow(query, name).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("rol arama hatası: %w", err)
	}

	return &role, nil
}

// GetAllRoles tüm rolleri yetkileriyle listeler
func (r *RoleRepository) GetAllRoles() ([]*models.RoleWithPermissions, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at,
		       COALESCE(array_agg(p.code) FILTER (WHERE p.code IS NOT NULL), '{}')
		FROM roles r
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		GROUP BY r.id
		ORDER BY r.name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("rol listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var roles []*models.RoleWithPermissions
	for rows.Next() {
		var role models.RoleWithPermissions
		err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&role.CreatedAt,
			pq.Array(&role.Permissions),
		)
		if err != nil {
			return nil, fmt.Errorf("rol okunamadı: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roller okunurken hata: %w", err)
	}

	return roles, nil
}

// UpdateRole rol bilgilerini günceller
func (r *RoleRepository) UpdateRole(id int, req *models.UpdateRoleRequest) (*models.Role, error) {
	query := `
		UPDATE roles
		SET name = COALESCE($2, name), description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, created_at
	`

	var role models.Role
	err := r.db.QueryRow(query, id, req.Name, req.Description).Scan(
		&role.ID,
		&role.Name,
		&role.Description,
		&role.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("rol bulunamadı")
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("bu isimde bir rol zaten var")
		}
		return nil, fmt.Errorf("rol güncellenemedi: %w", err)
	}

	return &role, nil
}

// DeleteRole rolü ve tüm atamalarını tek transaction'da siler
func (r *RoleRepository) DeleteRole(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction başlatılamadı: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM role_permissions WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("rol yetki atamaları silinemedi: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM user_roles WHERE role_id = $1`, id); err != nil {
		return fmt.Errorf("rol kullanıcı atamaları silinemedi: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("rol silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("silme sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rol bulunamadı")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit edilemedi: %w", err)
	}

	return nil
}

// AssignPermission role yetki atar (idempotent)
func (r *RoleRepository) AssignPermission(roleID int, code string) error {
	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, p.id FROM permissions p WHERE p.code = $2
		ON CONFLICT DO NOTHING
	`

	result, err := r.db.Exec(query, roleID, code)
	if err != nil {
		return fmt.Errorf("yetki atanamadı: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("atama sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		// Kod tanımsız veya atama zaten var; tanımsız kodu ayırt et
		var exists bool
		if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM permissions WHERE code = $1)`, code).Scan(&exists); err != nil {
			return fmt.Errorf("yetki kontrolü yapılamadı: %w", err)
		}
		if !exists {
			return fmt.Errorf("yetki kodu bulunamadı: %s", code)
		}
	}

	return nil
}

// RevokePermission rolden yetkiyi kaldırır
func (r *RoleRepository) RevokePermission(roleID int, code string) error {
	query := `
		DELETE FROM role_permissions
		WHERE role_id = $1
		  AND permission_id = (SELECT id FROM permissions WHERE code = $2)
	`

	if _, err := r.db.Exec(query, roleID, code); err != nil {
		return fmt.Errorf("yetki kaldırılamadı: %w", err)
	}

	return nil
}

// AssignRole kullanıcıya rol atar (idempotent)
func (r *RoleRepository) AssignRole(userID, roleID int) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.db.Exec(query, userID, roleID); err != nil {
		return fmt.Errorf("rol atanamadı: %w", err)
	}

	return nil
}

// RevokeRole kullanıcıdan rolü kaldırır
func (r *RoleRepository) RevokeRole(userID, roleID int) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	if _, err := r.db.Exec(query, userID, roleID); err != nil {
		return fmt.Errorf("rol kaldırılamadı: %w", err)
	}

	return nil
}

// GetUserAccess kullanıcının rol adlarını ve efektif yetki kodlarını çözer.
// Login sırasında bir kez çağrılır; sonuç JWT claims'e gömülür.
func (r *RoleRepository) GetUserAccess(userID int) ([]string, []string, error) {
	query := `
		SELECT COALESCE(array_agg(DISTINCT r.name) FILTER (WHERE r.name IS NOT NULL), '{}'),
		       COALESCE(array_agg(DISTINCT p.code) FILTER (WHERE p.code IS NOT NULL), '{}')
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE ur.user_id = $1
	`

	var roles, permissions []string
	err := r.db.QueryRow(query, userID).Scan(pq.Array(&roles), pq.Array(&permissions))
	if err != nil {
		if err == sql.ErrNoRows {
			return []string{}, []string{}, nil
		}
		return nil, nil, fmt.Errorf("kullanıcı yetkileri çözülemedi: %w", err)
	}

	return roles, permissions, nil
}

// GetAllPermissions tanımlı tüm yetkileri listeler
func (r *RoleRepository) GetAllPermissions() ([]*models.Permission, error) {
	query := `SELECT id, code, description, created_at FROM permissions ORDER BY code`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("yetki listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var permissions []*models.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("yetki okunamadı: %w", err)
		}
		permissions = append(permissions, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("yetkiler okunurken hata: %w", err)
	}

	return permissions, nil
}

// SeedPermissions registry'deki kodları permissions tablosuna ekler.
// Startup'ta çağrılır; mevcut kodlara dokunmaz.
func (r *RoleRepository) SeedPermissions(codes map[string]string) error {
	query := `
		INSERT INTO permissions (code, description)
		VALUES ($1, $2)
		ON CONFLICT (code) DO NOTHING
	`

	for code, description := range codes {
		if _, err := r.db.Exec(query, code, description); err != nil {
			return fmt.Errorf("yetki kodu eklenemedi (%s): %w", code, err)
		}
	}

	return nil
}
