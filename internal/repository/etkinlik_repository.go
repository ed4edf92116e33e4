package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// EtkinlikRepository etkinlik database işlemleri
type EtkinlikRepository struct {
	db *sql.DB
}

// NewEtkinlikRepository yeni repository oluşturur
func NewEtkinlikRepository(db *sql.DB) interfaces.EtkinlikRepositoryInterface {
	return &EtkinlikRepository{db: db}
}

// Create yeni etkinlik oluşturur
func (r *EtkinlikRepository) Create(createdBy int, req *models.CreateEtkinlikRequest) (*models.Etkinlik, error) {
	query := `
		INSERT INTO etkinlikler (title, description, cari_id, starts_at, ends_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, description, cari_id, starts_at, ends_at, created_by, created_at
	`

	var e models.Etkinlik
	err := r.db.QueryRow(query, req.Title, req.Description, req.CariID, req.StartsAt, req.EndsAt, createdBy).Scan(
		&e.ID, &e.Title, &e.Description, &e.CariID, &e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("etkinlik oluşturulamadı: %w", err)
	}

	return &e, nil
}

// GetByID ID ile etkinlik getirir
func (r *EtkinlikRepository) GetByID(id int) (*models.Etkinlik, error) {
	query := `
		SELECT id, title, description, cari_id, starts_at, ends_at, created_by, created_at
		FROM etkinlikler
		WHERE id = $1
	`

	var e models.Etkinlik
	err := r.db.QueryRow(query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.CariID, &e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("etkinlik bulunamadı")
		}
		return nil, fmt.Errorf("etkinlik arama hatası: %w", err)
	}

	return &e, nil
}

// List tarih aralığına göre etkinlikleri listeler
func (r *EtkinlikRepository) List(filter *models.EtkinlikFilter) ([]*models.Etkinlik, int, error) {
	var conditions []string
	var args []interface{}

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("starts_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM etkinlikler"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("etkinlik sayısı alınamadı: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, title, description, cari_id, starts_at, ends_at, created_by, created_at
		FROM etkinlikler%s
		ORDER BY starts_at
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(query, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("etkinlik listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var etkinlikler []*models.Etkinlik
	for rows.Next() {
		var e models.Etkinlik
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.CariID, &e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("etkinlik okunamadı: %w", err)
		}
		etkinlikler = append(etkinlikler, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("etkinlikler okunurken hata: %w", err)
	}

	return etkinlikler, total, nil
}

// Update etkinlik bilgilerini günceller
func (r *EtkinlikRepository) Update(id int, req *models.UpdateEtkinlikRequest) (*models.Etkinlik, error) {
	query := `
		UPDATE etkinlikler
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    cari_id = COALESCE($4, cari_id),
		    starts_at = COALESCE($5, starts_at),
		    ends_at = COALESCE($6, ends_at)
		WHERE id = $1
		RETURNING id, title, description, cari_id, starts_at, ends_at, created_by, created_at
	`

	var e models.Etkinlik
	err := r.db.QueryRow(query, id, req.Title, req.Description, req.CariID, req.StartsAt, req.EndsAt).Scan(
		&e.ID, &e.Title, &e.Description, &e.CariID, &e.StartsAt, &e.EndsAt, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("etkinlik bulunamadı")
		}
		return nil, fmt.Errorf("etkinlik güncellenemedi: %w", err)
	}

	return &e, nil
}

// Delete etkinliği siler
func (r *EtkinlikRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM etkinlikler WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("etkinlik silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("silme sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("etkinlik bulunamadı")
	}

	return nil
}
