package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// MockAuditLogRepository - test için mock repository
type MockAuditLogRepository struct {
	mock.Mock
}

var _ interfaces.AuditLogRepositoryInterface = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) Create(entry *models.AuditLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(filter *models.AuditLogFilter) ([]*models.AuditLog, int, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.AuditLog), args.Int(1), args.Error(2)
}

func (m *MockAuditLogRepository) DistinctActions() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAuditLogRepository) DistinctResources() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestAuditLogService_List_Pagination(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	items := []*models.AuditLog{{ID: 1, Action: "create", Resource: "cari"}}
	mockRepo.On("List", mock.AnythingOfType("*models.AuditLogFilter")).Return(items, 45, nil)

	page, err := service.List(&models.AuditLogFilter{Page: 2, Limit: 20})

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 45, page.Total)
	assert.Equal(t, 3, page.TotalPages) // ceil(45/20)
	assert.Len(t, page.Items, 1)

	mockRepo.AssertExpectations(t)
}

// Geçersiz page/limit değerleri normalize edilir
func TestAuditLogService_List_NormalizesFilter(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	var captured *models.AuditLogFilter
	mockRepo.On("List", mock.AnythingOfType("*models.AuditLogFilter")).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(*models.AuditLogFilter)
		}).
		Return([]*models.AuditLog{}, 0, nil)

	page, err := service.List(&models.AuditLogFilter{Page: 0, Limit: -5})

	assert.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, auditDefaultLimit, captured.Limit)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, auditDefaultLimit, page.Limit)
}

// Limit üst sınırı aşamaz
func TestAuditLogService_List_ClampsLimit(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	mockRepo.On("List", mock.AnythingOfType("*models.AuditLogFilter")).Return([]*models.AuditLog{}, 0, nil)

	page, err := service.List(&models.AuditLogFilter{Page: 1, Limit: 500})

	assert.NoError(t, err)
	assert.Equal(t, auditMaxLimit, page.Limit)
}

// Boş sonuç nil yerine boş slice döner
func TestAuditLogService_List_EmptyResult(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	mockRepo.On("List", mock.AnythingOfType("*models.AuditLogFilter")).Return(nil, 0, nil)

	page, err := service.List(&models.AuditLogFilter{Page: 1, Limit: 20})

	assert.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}

func TestAuditLogService_List_RepoError(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	mockRepo.On("List", mock.AnythingOfType("*models.AuditLogFilter")).Return(nil, 0, fmt.Errorf("db hatası"))

	page, err := service.List(&models.AuditLogFilter{Page: 1, Limit: 20})

	assert.Error(t, err)
	assert.Nil(t, page)
}

func TestAuditLogService_Actions(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	mockRepo.On("DistinctActions").Return([]string{"create", "delete", "read"}, nil)

	actions, err := service.Actions()

	assert.NoError(t, err)
	assert.Equal(t, []string{"create", "delete", "read"}, actions)
}

func TestAuditLogService_Resources(t *testing.T) {
	mockRepo := new(MockAuditLogRepository)
	service := NewAuditLogService(mockRepo)

	mockRepo.On("DistinctResources").Return([]string{"cari", "rol"}, nil)

	resources, err := service.Resources()

	assert.NoError(t, err)
	assert.Equal(t, []string{"cari", "rol"}, resources)
}
