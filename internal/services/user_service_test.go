package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// MockUserRepository - test için mock repository
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(id int, req *models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(limit, offset int) ([]*models.User, int, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

// MockRoleRepository - test için mock repository
type MockRoleRepository struct {
	mock.Mock
}

var _ interfaces.RoleRepositoryInterface = (*MockRoleRepository)(nil)

func (m *MockRoleRepository) CreateRole(req *models.CreateRoleRequest) (*models.Role, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleRepository) GetRoleByID(id int) (*models.RoleWithPermissions, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoleWithPermissions), args.Error(1)
}

func (m *MockRoleRepository) GetRoleByName(name string) (*models.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleRepository) GetAllRoles() ([]*models.RoleWithPermissions, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RoleWithPermissions), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(id int, req *models.UpdateRoleRequest) (*models.Role, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleRepository) DeleteRole(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRoleRepository) AssignPermission(roleID int, code string) error {
	args := m.Called(roleID, code)
	return args.Error(0)
}

func (m *MockRoleRepository) RevokePermission(roleID int, code string) error {
	args := m.Called(roleID, code)
	return args.Error(0)
}

func (m *MockRoleRepository) AssignRole(userID, roleID int) error {
	args := m.Called(userID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) RevokeRole(userID, roleID int) error {
	args := m.Called(userID, roleID)
	return args.Error(0)
}

func (m *MockRoleRepository) GetUserAccess(userID int) ([]string, []string, error) {
	args := m.Called(userID)
	var roles, permissions []string
	if args.Get(0) != nil {
		roles = args.Get(0).([]string)
	}
	if args.Get(1) != nil {
		permissions = args.Get(1).([]string)
	}
	return roles, permissions, args.Error(2)
}

func (m *MockRoleRepository) GetAllPermissions() ([]*models.Permission, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Permission), args.Error(1)
}

func (m *MockRoleRepository) SeedPermissions(codes map[string]string) error {
	args := m.Called(codes)
	return args.Error(0)
}

func TestUserService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	req := &models.CreateUserRequest{
		Name:            "Test User",
		Email:           "Test@Example.com",
		Password:        "Password123!",
		ConfirmPassword: "Password123!",
	}

	expectedUser := &models.User{
		ID:    1,
		Name:  "Test User",
		Email: "test@example.com",
	}

	// Email normalize edilmiş haliyle kontrol edilir
	mockUserRepo.On("GetByEmail", "test@example.com").Return(nil, nil)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.CreateUserRequest")).Return(expectedUser, nil)

	// Act
	result, err := userService.Register(req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "test@example.com", result.Email)

	// Şifre hash'lenmiş olarak repo'ya gitmeli
	assert.NotEqual(t, "Password123!", req.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(req.Password), []byte("Password123!")))

	mockUserRepo.AssertExpectations(t)
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	req := &models.CreateUserRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "Password123!",
	}

	mockUserRepo.On("GetByEmail", "existing@example.com").Return(&models.User{ID: 1}, nil)

	result, err := userService.Register(req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "bu email ile kayıtlı kullanıcı zaten var")
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	req := &models.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "kisa",
	}

	result, err := userService.Register(req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "en az 8 karakter")
}

func TestUserService_Register_PasswordMismatch(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	req := &models.CreateUserRequest{
		Name:            "Test User",
		Email:           "test@example.com",
		Password:        "Password123!",
		ConfirmPassword: "Farkli123!",
	}

	result, err := userService.Register(req)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "şifreler eşleşmiyor")
}

func TestUserService_Login_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	user := &models.User{ID: 5, Email: "test@example.com", Password: string(hashed)}

	mockUserRepo.On("GetByEmail", "test@example.com").Return(user, nil)
	mockRoleRepo.On("GetUserAccess", 5).Return([]string{"satis"}, []string{"cariler_goruntuleme"}, nil)

	resp, err := userService.Login(&models.LoginRequest{Email: "test@example.com", Password: "Password123!"})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, []string{"satis"}, resp.Roles)
	assert.Equal(t, []string{"cariler_goruntuleme"}, resp.Permissions)

	// Hash response'ta sızdırılmaz
	assert.Empty(t, resp.User.Password)

	mockRoleRepo.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("DogruSifre123"), bcrypt.DefaultCost)
	user := &models.User{ID: 5, Email: "test@example.com", Password: string(hashed)}

	mockUserRepo.On("GetByEmail", "test@example.com").Return(user, nil)

	resp, err := userService.Login(&models.LoginRequest{Email: "test@example.com", Password: "YanlisSifre"})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "email veya şifre hatalı")
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	mockUserRepo.On("GetByEmail", "yok@example.com").Return(nil, nil)

	resp, err := userService.Login(&models.LoginRequest{Email: "yok@example.com", Password: "Password123!"})

	assert.Error(t, err)
	assert.Nil(t, resp)
}

// "admin" rolü taşıyan kullanıcı super-admin olarak işaretlenir
func TestUserService_Login_SuperAdminResolution(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRoleRepo := new(MockRoleRepository)
	userService := NewUserService(mockUserRepo, mockRoleRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	user := &models.User{ID: 1, Email: "admin@example.com", Password: string(hashed)}

	mockUserRepo.On("GetByEmail", "admin@example.com").Return(user, nil)
	mockRoleRepo.On("GetUserAccess", 1).Return([]string{"admin"}, []string{}, nil)

	resp, err := userService.Login(&models.LoginRequest{Email: "admin@example.com", Password: "Password123!"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}
