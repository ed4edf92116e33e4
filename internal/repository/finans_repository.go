package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// FinansRepository finans kayıt database işlemleri
type FinansRepository struct {
	db *sql.DB
}

// NewFinansRepository yeni repository oluşturur
func NewFinansRepository(db *sql.DB) interfaces.FinansRepositoryInterface {
	return &FinansRepository{db: db}
}

// Create yeni finans kaydı oluşturur
func (r *FinansRepository) Create(recordedBy int, req *models.CreateFinansKayitRequest) (*models.FinansKayit, error) {
	query := `
		INSERT INTO finans_kayitlari (type, amount, description, cari_id, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, type, amount, description, cari_id, recorded_by, recorded_at, created_at
	`

	var k models.FinansKayit
	err := r.db.QueryRow(query, req.Type, req.Amount, req.Description, req.CariID, recordedBy, req.RecordedAt).Scan(
		&k.ID, &k.Type, &k.Amount, &k.Description, &k.CariID, &k.RecordedBy, &k.RecordedAt, &k.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("finans kaydı oluşturulamadı: %w", err)
	}

	return &k, nil
}

// GetByID ID ile kayıt getirir
func (r *FinansRepository) GetByID(id int) (*models.FinansKayit, error) {
	query := `
		SELECT id, type, amount, description, cari_id, recorded_by, recorded_at, created_at
		FROM finans_kayitlari
		WHERE id = $1
	`

	var k models.FinansKayit
	err := r.db.QueryRow(query, id).Scan(
		&k.ID, &k.Type, &k.Amount, &k.Description, &k.CariID, &k.RecordedBy, &k.RecordedAt, &k.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("finans kaydı bulunamadı")
		}
		return nil, fmt.Errorf("finans kaydı arama hatası: %w", err)
	}

	return &k, nil
}

// buildFinansWhere filtreden WHERE cümlesi ve argüman listesi üretir
func buildFinansWhere(filter *models.FinansFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.CariID != nil {
		args = append(args, *filter.CariID)
		conditions = append(conditions, fmt.Sprintf("cari_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("recorded_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("recorded_at <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List filtrelenmiş kayıtları ve toplam sayıyı döner
func (r *FinansRepository) List(filter *models.FinansFilter) ([]*models.FinansKayit, int, error) {
	where, args := buildFinansWhere(filter)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM finans_kayitlari"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("finans kayıt sayısı alınamadı: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, type, amount, description, cari_id, recorded_by, recorded_at, created_at
		FROM finans_kayitlari%s
		ORDER BY recorded_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(query, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("finans kayıtları alınamadı: %w", err)
	}
	defer rows.Close()

	var kayitlar []*models.FinansKayit
	for rows.Next() {
		var k models.FinansKayit
		err := rows.Scan(
			&k.ID, &k.Type, &k.Amount, &k.Description, &k.CariID, &k.RecordedBy, &k.RecordedAt, &k.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("finans kaydı okunamadı: %w", err)
		}
		kayitlar = append(kayitlar, &k)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("finans kayıtları okunurken hata: %w", err)
	}

	return kayitlar, total, nil
}

// Delete kaydı siler
func (r *FinansRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM finans_kayitlari WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("finans kaydı silinemedi: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("silme sonucu okunamadı: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finans kaydı bulunamadı")
	}

	return nil
}

// Ozet filtreye göre toplam gelir/gider ve bakiyeyi döner
func (r *FinansRepository) Ozet(filter *models.FinansFilter) (*models.FinansOzet, error) {
	where, args := buildFinansWhere(filter)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'gelir'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'gider'), 0)
		FROM finans_kayitlari%s
	`, where)

	var ozet models.FinansOzet
	if err := r.db.QueryRow(query, args...).Scan(&ozet.ToplamGelir, &ozet.ToplamGider); err != nil {
		return nil, fmt.Errorf("finans özeti alınamadı: %w", err)
	}

	ozet.Bakiye = ozet.ToplamGelir - ozet.ToplamGider
	return &ozet, nil
}
