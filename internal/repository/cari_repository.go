package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// CariRepository cari database işlemleri
type CariRepository struct {
	db *sql.DB
}

// NewCariRepository yeni repository oluşturur
func NewCariRepository(db *sql.DB) interfaces.CariRepositoryInterface {
	return &CariRepository{db: db}
}

// Create yeni cari oluşturur
func (r *CariRepository) Create(req *models.CreateCariRequest) (*models.Cari, error) {
	query := `
		INSERT INTO cariler (name, type, email, phone, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, type, email, phone, address, notes, created_at, updated_at
	`

	var cari models.Cari
	err := r.db.QueryRow(query, req.Name, req.Type, req.Email, req.Phone, req.Address, req.Notes).Scan(
		&cari.ID, &cari.Name, &cari.Type, &cari.Email, &cari.Phone,
		&cari.Address, &cari.Notes, &cari.CreatedAt, &cari.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("cari oluşturulamadı: %w", err)
	}

	return &cari, nil
}

// GetByID ID ile cari getirir
func (r *CariRepository) GetByID(id int) (*models.Cari, error) {
	query := `
		SELECT id, name, type, email, phone, address, notes, created_at, updated_at
		FROM cariler
		WHERE id = $1
	`

	var cari models.Cari
	err := r.db.QueryRow(query, id).Scan(
		&cari.ID, &cari.Name, &cari.Type, &cari.Email, &cari.Phone,
		&cari.Address, &cari.Notes, &cari.CreatedAt, &cari.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cari bulunamadı")
		}
		return nil, fmt.Errorf("cari arama hatası: %w", err)
	}

	return &cari, nil
}

// List filtrelenmiş cari listesini ve toplam sayıyı döner
func (r *CariRepository) List(filter *models.CariFilter) ([]*models.Cari, int, error) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cariler"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("cari sayısı alınamadı: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, name, type, email, phone, address, notes, created_at, updated_at
		FROM cariler%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(query, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("cari listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var cariler []*models.Cari
	for rows.Next() {
		var cari models.Cari
		err := rows.Scan(
			&cari.ID, &cari.Name, &cari.Type, &cari.Email, &cari.Phone,
			&cari.Address, &cari.Notes, &cari.CreatedAt, &cari.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("cari okunamadı: %w", err)
		}
		cariler = append(cariler, &cari)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("cariler okunurken hata: %w", err)
	}

	return cariler, total, nil
}

// Update cari bilgilerini günceller
func (r *CariRepository) Update(id int, req *models.UpdateCariRequest) (*models.Cari, error) {
	query := `
		UPDATE cariler
		SET name = COALESCE($2, name),
		    type = COALESCE($3, type),
		    email = COALESCE($4, email),
		    phone = COALESCE($5, phone),
		    address = COALESCE($6, address),
		    notes = COALESCE($7, notes),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, type, email, phone, address, notes, created_at, updated_at
	`

	var cari models.Cari
	err := r.db.QueryRow(query, id, req.Name, req.Type, req.Email, req.Phone, req.Address, req.Notes).Scan(
		&cari.ID, &cari.Name, &cari.Type, &cari.Email, &cari.Phone,
		&cari.Address, &cari.Notes, &cari.CreatedAt, &cari.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cari bulunamadı")
		}
		return nil, fmt.Errorf("cari güncellenemedi: %w", err)
	}

	return &cari, nil
}

// Delete cariyi siler
func (r *CariRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM cariler WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("cari silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("silme sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cari bulunamadı")
	}

	return nil
}
