package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// AuditLogRepository audit log store'un postgres implementasyonu.
// Kayıtlar append-only: update/delete yolu yoktur.
type AuditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository yeni repository oluşturur
func NewAuditLogRepository(db *sql.DB) interfaces.AuditLogRepositoryInterface {
	return &AuditLogRepository{db: db}
}

// Create yeni audit kaydı ekler
func (r *AuditLogRepository) Create(entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, action, resource, resource_id, ip_address, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		entry.UserID,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		entry.IPAddress,
		entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("audit kaydı oluşturulamadı: %w", err)
	}

	return nil
}

// List filtrelenmiş ve sayfalanmış audit kayıtlarını döner.
// İkinci dönüş değeri filtreye uyan toplam kayıt sayısıdır.
func (r *AuditLogRepository) List(filter *models.AuditLogFilter) ([]*models.AuditLog, int, error) {
	where, args := buildAuditWhere(filter)

	countQuery := "SELECT COUNT(*) FROM audit_logs" + where

	var total int
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("audit kayıt sayısı alınamadı: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, action, resource, resource_id, ip_address, details, created_at
		FROM audit_logs%s%s
		LIMIT $%d OFFSET $%d
	`, where, buildAuditOrder(filter), len(args)+1, len(args)+2)

	rows, err := r.db.Query(listQuery, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("audit kayıtları alınamadı: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Resource,
			&entry.ResourceID,
			&entry.IPAddress,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("audit kaydı okunamadı: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("audit kayıtları okunurken hata: %w", err)
	}

	return entries, total, nil
}

// buildAuditWhere filtreden WHERE cümlesi ve argüman listesi üretir
func buildAuditWhere(filter *models.AuditLogFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Action != "" {
		addCondition("action = $%d", filter.Action)
	}
	if filter.Resource != "" {
		addCondition("resource = $%d", filter.Resource)
	}
	if filter.UserID != nil {
		addCondition("user_id = $%d", *filter.UserID)
	}
	if filter.StartDate != nil {
		addCondition("created_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("created_at <= $%d", *filter.EndDate)
	}
	if filter.Search != "" {
		// Serbest metin: resource, action ve path üzerinde arama
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(resource ILIKE $%d OR action ILIKE $%d OR details->>'path' ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildAuditOrder filtreden ORDER BY cümlesi üretir. Kolon beyaz liste
// üzerinden çözülür; liste dışı veya boş değer created_at DESC'e düşer.
func buildAuditOrder(filter *models.AuditLogFilter) string {
	column := filter.SortBy
	if !models.AuditSortable(column) {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		direction = "ASC"
	}

	// id ikincil anahtar: eşit değerlerde kararlı sıra
	return fmt.Sprintf(" ORDER BY %s %s, id DESC", column, direction)
}

// DistinctActions kayıtlı farklı action değerlerini döner
func (r *AuditLogRepository) DistinctActions() ([]string, error) {
	return r.distinctColumn("action")
}

// DistinctResources kayıtlı farklı resource değerlerini döner
func (r *AuditLogRepository) DistinctResources() ([]string, error) {
	return r.distinctColumn("resource")
}

// distinctColumn tek kolonun distinct değerlerini çeker
func (r *AuditLogRepository) distinctColumn(column string) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM audit_logs ORDER BY %s", column, column)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s değerleri alınamadı: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("%s değeri okunamadı: %w", column, err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s değerleri okunurken hata: %w", column, err)
	}

	return values, nil
}
