package repository

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/kobisoft/crm-api/internal/models"
)

func TestAuditLogRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	userID := 7
	resourceID := "5"
	details := json.RawMessage(`{"method":"DELETE","path":"/api/v1/cariler/5","status_code":200}`)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs(&userID, "delete", "cari", &resourceID, "10.0.0.1", details).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(101, now))

	entry := &models.AuditLog{
		UserID:     &userID,
		Action:     "delete",
		Resource:   "cari",
		ResourceID: &resourceID,
		IPAddress:  "10.0.0.1",
		Details:    details,
	}

	err = repo.Create(entry)

	assert.NoError(t, err)
	assert.Equal(t, 101, entry.ID)
	assert.Equal(t, now, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_List_NoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM audit_logs")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	userID := 7
	resourceID := "5"
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "ip_address", "details", "created_at"}).
		AddRow(2, userID, "delete", "cari", resourceID, "10.0.0.1", []byte(`{}`), time.Now()).
		AddRow(1, nil, "read", "auditlogs", nil, "10.0.0.2", []byte(`{}`), time.Now())

	mock.ExpectQuery("SELECT id, user_id, action, resource, resource_id, ip_address, details, created_at").
		WithArgs(20, 0).
		WillReturnRows(rows)

	entries, total, err := repo.List(&models.AuditLogFilter{Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)
	assert.Nil(t, entries[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Filtreler WHERE cümlesine sıralı placeholder'larla eklenir
func TestAuditLogRepository_List_WithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	userID := 7
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND resource = $2 AND user_id = $3")).
		WithArgs("delete", "cari", userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "ip_address", "details", "created_at"}).
		AddRow(3, userID, "delete", "cari", "5", "10.0.0.1", []byte(`{}`), time.Now())

	mock.ExpectQuery("SELECT id, user_id, action, resource, resource_id, ip_address, details, created_at").
		WithArgs("delete", "cari", userID, 10, 10).
		WillReturnRows(rows)

	filter := &models.AuditLogFilter{
		Action:   "delete",
		Resource: "cari",
		UserID:   &userID,
		Page:     2,
		Limit:    10,
	}

	entries, total, err := repo.List(filter)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Serbest metin araması resource, action ve path üzerinde çalışır
func TestAuditLogRepository_List_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(resource ILIKE $1 OR action ILIKE $1 OR details->>'path' ILIKE $1)")).
		WithArgs("%cari%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("SELECT id, user_id, action, resource, resource_id, ip_address, details, created_at").
		WithArgs("%cari%", 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "ip_address", "details", "created_at"}))

	entries, total, err := repo.List(&models.AuditLogFilter{Search: "cari", Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Sort parametresi beyaz listedeki kolonla ORDER BY cümlesine girer
func TestAuditLogRepository_List_Sort(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM audit_logs")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY action ASC, id DESC")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "ip_address", "details", "created_at"}))

	_, _, err = repo.List(&models.AuditLogFilter{SortBy: "action", SortDir: "asc", Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Beyaz liste dışı sort kolonu varsayılan sıralamaya düşer
func TestBuildAuditOrder(t *testing.T) {
	assert.Equal(t, " ORDER BY created_at DESC, id DESC", buildAuditOrder(&models.AuditLogFilter{}))
	assert.Equal(t, " ORDER BY user_id ASC, id DESC", buildAuditOrder(&models.AuditLogFilter{SortBy: "user_id", SortDir: "asc"}))
	assert.Equal(t, " ORDER BY resource DESC, id DESC", buildAuditOrder(&models.AuditLogFilter{SortBy: "resource", SortDir: "desc"}))
	assert.Equal(t, " ORDER BY created_at DESC, id DESC", buildAuditOrder(&models.AuditLogFilter{SortBy: "details; DROP TABLE audit_logs"}))
}

func TestAuditLogRepository_DistinctActions(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT action FROM audit_logs ORDER BY action")).
		WillReturnRows(sqlmock.NewRows([]string{"action"}).AddRow("create").AddRow("delete").AddRow("read"))

	actions, err := repo.DistinctActions()

	assert.NoError(t, err)
	assert.Equal(t, []string{"create", "delete", "read"}, actions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_DistinctResources(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuditLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT resource FROM audit_logs ORDER BY resource")).
		WillReturnRows(sqlmock.NewRows([]string{"resource"}).AddRow("auditlogs").AddRow("cari"))

	resources, err := repo.DistinctResources()

	assert.NoError(t, err)
	assert.Equal(t, []string{"auditlogs", "cari"}, resources)
	assert.NoError(t, mock.ExpectationsWereMet())
}
