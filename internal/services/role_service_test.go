package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kobisoft/crm-api/internal/models"
)

func TestRoleService_CreateRole_Success(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	req := &models.CreateRoleRequest{Name: "satis", Description: "Satış ekibi"}
	expected := &models.Role{ID: 2, Name: "satis", Description: "Satış ekibi"}

	mockRepo.On("CreateRole", mock.AnythingOfType("*models.CreateRoleRequest")).Return(expected, nil)

	role, err := service.CreateRole(req)

	assert.NoError(t, err)
	assert.Equal(t, "satis", role.Name)
	mockRepo.AssertExpectations(t)
}

func TestRoleService_CreateRole_EmptyName(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	role, err := service.CreateRole(&models.CreateRoleRequest{Name: ""})

	assert.Error(t, err)
	assert.Nil(t, role)
	mockRepo.AssertNotCalled(t, "CreateRole")
}

// Registry dışı yetki kodu role atanamaz
func TestRoleService_AssignPermission_UnknownCode(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	err := service.AssignPermission(2, "uydurma_yetki")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tanımsız yetki kodu")
	mockRepo.AssertNotCalled(t, "AssignPermission")
}

func TestRoleService_AssignPermission_Success(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	mockRepo.On("AssignPermission", 2, "cariler_goruntuleme").Return(nil)

	err := service.AssignPermission(2, "cariler_goruntuleme")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestRoleService_UpdateRole_EmptyName(t *testing.T) {
	mockRepo := new(MockRoleRepository)
	service := NewRoleService(mockRepo)

	empty := ""
	role, err := service.UpdateRole(2, &models.UpdateRoleRequest{Name: &empty})

	assert.Error(t, err)
	assert.Nil(t, role)
}
