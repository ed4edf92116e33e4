package services

import (
	"fmt"
	"strings"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// CariService cari business logic'i
type CariService struct {
	cariRepo interfaces.CariRepositoryInterface
}

// NewCariService yeni service oluşturur
func NewCariService(cariRepo interfaces.CariRepositoryInterface) interfaces.CariServiceInterface {
	return &CariService{cariRepo: cariRepo}
}

// validCariType tip kontrolü
func validCariType(t string) bool {
	return t == "musteri" || t == "tedarikci"
}

// Create yeni cari oluşturur
func (s *CariService) Create(req *models.CreateCariRequest) (*models.Cari, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("cari adı zorunludur")
	}
	if req.Type == "" {
		req.Type = "musteri"
	}
	if !validCariType(req.Type) {
		return nil, fmt.Errorf("geçersiz cari tipi: %s", req.Type)
	}

	return s.cariRepo.Create(req)
}

// GetByID ID ile cari getirir
func (s *CariService) GetByID(id int) (*models.Cari, error) {
	return s.cariRepo.GetByID(id)
}

// List filtrelenmiş cari listesini döner
func (s *CariService) List(filter *models.CariFilter) ([]*models.Cari, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.cariRepo.List(filter)
}

// Update cari bilgilerini günceller
func (s *CariService) Update(id int, req *models.UpdateCariRequest) (*models.Cari, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("cari adı boş olamaz")
	}
	if req.Type != nil && !validCariType(*req.Type) {
		return nil, fmt.Errorf("geçersiz cari tipi: %s", *req.Type)
	}
	return s.cariRepo.Update(id, req)
}

// Delete cariyi siler
func (s *CariService) Delete(id int) error {
	return s.cariRepo.Delete(id)
}
