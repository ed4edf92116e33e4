package services

import (
	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// Audit liste endpoint'inin pagination sınırları
const (
	auditDefaultLimit = 20
	auditMaxLimit     = 100
)

// AuditLogService audit log sorgu business logic'i
type AuditLogService struct {
	auditRepo interfaces.AuditLogRepositoryInterface
}

// NewAuditLogService yeni service oluşturur
func NewAuditLogService(auditRepo interfaces.AuditLogRepositoryInterface) interfaces.AuditLogServiceInterface {
	return &AuditLogService{auditRepo: auditRepo}
}

// List filtrelenmiş, sayfalanmış audit kayıtlarını döner
func (s *AuditLogService) List(filter *models.AuditLogFilter) (*models.AuditLogPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = auditDefaultLimit
	}
	if filter.Limit > auditMaxLimit {
		filter.Limit = auditMaxLimit
	}

	items, total, err := s.auditRepo.List(filter)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.AuditLog{}
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &models.AuditLogPage{
		Items:      items,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Actions kayıtlı farklı action değerlerini döner
func (s *AuditLogService) Actions() ([]string, error) {
	return s.auditRepo.DistinctActions()
}

// Resources kayıtlı farklı resource değerlerini döner
func (s *AuditLogService) Resources() ([]string, error) {
	return s.auditRepo.DistinctResources()
}
