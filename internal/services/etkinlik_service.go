package services

import (
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// EtkinlikService etkinlik business logic'i
type EtkinlikService struct {
	etkinlikRepo interfaces.EtkinlikRepositoryInterface
}

// NewEtkinlikService yeni service oluşturur
func NewEtkinlikService(etkinlikRepo interfaces.EtkinlikRepositoryInterface) interfaces.EtkinlikServiceInterface {
	return &EtkinlikService{etkinlikRepo: etkinlikRepo}
}

// Create yeni etkinlik oluşturur
func (s *EtkinlikService) Create(createdBy int, req *models.CreateEtkinlikRequest) (*models.Etkinlik, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("etkinlik başlığı zorunludur")
	}
	if req.StartsAt.IsZero() {
		return nil, fmt.Errorf("başlangıç zamanı zorunludur")
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("bitiş zamanı başlangıçtan önce olamaz")
	}

	return s.etkinlikRepo.Create(createdBy, req)
}

// GetByID ID ile etkinlik getirir
func (s *EtkinlikService) GetByID(id int) (*models.Etkinlik, error) {
	return s.etkinlikRepo.GetByID(id)
}

// List tarih aralığına göre etkinlikleri listeler
func (s *EtkinlikService) List(filter *models.EtkinlikFilter) ([]*models.Etkinlik, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.etkinlikRepo.List(filter)
}

// Update etkinlik bilgilerini günceller
func (s *EtkinlikService) Update(id int, req *models.UpdateEtkinlikRequest) (*models.Etkinlik, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("etkinlik başlığı boş olamaz")
	}
	return s.etkinlikRepo.Update(id, req)
}

// Delete etkinliği siler
func (s *EtkinlikService) Delete(id int) error {
	return s.etkinlikRepo.Delete(id)
}
