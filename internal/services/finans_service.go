package services

import (
	"fmt"
	"time"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// FinansService finans kayıt business logic'i
type FinansService struct {
	finansRepo interfaces.FinansRepositoryInterface
}

// NewFinansService yeni service oluşturur
func NewFinansService(finansRepo interfaces.FinansRepositoryInterface) interfaces.FinansServiceInterface {
	return &FinansService{finansRepo: finansRepo}
}

// Create yeni finans kaydı oluşturur
func (s *FinansService) Create(recordedBy int, req *models.CreateFinansKayitRequest) (*models.FinansKayit, error) {
	if req.Type != models.FinansTipGelir && req.Type != models.FinansTipGider {
		return nil, fmt.Errorf("geçersiz kayıt tipi: %s", req.Type)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("tutar sıfırdan büyük olmalıdır")
	}
	if req.RecordedAt.IsZero() {
		req.RecordedAt = time.Now()
	}

	return s.finansRepo.Create(recordedBy, req)
}

// GetByID ID ile kayıt getirir
func (s *FinansService) GetByID(id int) (*models.FinansKayit, error) {
	return s.finansRepo.GetByID(id)
}

// List filtrelenmiş kayıtları döner
func (s *FinansService) List(filter *models.FinansFilter) ([]*models.FinansKayit, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.finansRepo.List(filter)
}

// Delete kaydı siler
func (s *FinansService) Delete(id int) error {
	return s.finansRepo.Delete(id)
}

// Ozet filtreye göre kasa özetini döner
func (s *FinansService) Ozet(filter *models.FinansFilter) (*models.FinansOzet, error) {
	return s.finansRepo.Ozet(filter)
}
