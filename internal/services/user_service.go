package services

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/kobisoft/crm-api/internal/auth"
	"github.com/kobisoft/crm-api/internal/interfaces"
	"github.com/kobisoft/crm-api/internal/models"
)

// superAdminRole bu rolü taşıyan kullanıcılar tüm yetki kontrollerini
// geçer; bypass token üretiminde bir kez çözülür ve claims'te açıkça
// işaretlenir
const superAdminRole = "admin"

// UserService kullanıcı business logic'i
type UserService struct {
	userRepo interfaces.UserRepositoryInterface
	roleRepo interfaces.RoleRepositoryInterface
}

// NewUserService yeni service oluşturur
func NewUserService(userRepo interfaces.UserRepositoryInterface, roleRepo interfaces.RoleRepositoryInterface) interfaces.UserServiceInterface {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo}
}

// Register yeni kullanıcı kaydeder
func (s *UserService) Register(req *models.CreateUserRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" || req.Email == "" {
		return nil, fmt.Errorf("isim ve email zorunludur")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("şifre en az 8 karakter olmalıdır")
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("şifreler eşleşmiyor")
	}

	// Email benzersiz mi
	existing, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("email kontrolü yapılamadı: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("bu email ile kayıtlı kullanıcı zaten var")
	}

	// Şifreyi hash'le
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("şifre hash'lenemedi: %w", err)
	}
	req.Password = string(hashed)

	user, err := s.userRepo.Create(req)
	if err != nil {
		return nil, err
	}

	log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("Yeni kullanıcı kaydedildi")
	return user, nil
}

// Login kullanıcı girişi yapar; rolleri ve efektif yetkileri çözüp
// JWT token'a gömer
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("giriş yapılamadı: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("email veya şifre hatalı")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("email veya şifre hatalı")
	}

	roles, permissions, err := s.roleRepo.GetUserAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı yetkileri çözülemedi: %w", err)
	}

	isSuperAdmin := false
	for _, role := range roles {
		if role == superAdminRole {
			isSuperAdmin = true
			break
		}
	}

	token, err := auth.GenerateToken(user.ID, user.Email, roles, permissions, isSuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("token oluşturulamadı: %w", err)
	}

	// Hash response'ta görünmesin
	user.Password = ""

	log.Info().
		Int("user_id", user.ID).
		Strs("roles", roles).
		Bool("is_super_admin", isSuperAdmin).
		Msg("Kullanıcı giriş yaptı")

	return &models.LoginResponse{
		User:        user,
		Token:       token,
		Roles:       roles,
		Permissions: permissions,
	}, nil
}

// GetUserByID ID ile kullanıcı getirir
func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateUser kullanıcı bilgilerini günceller
func (s *UserService) UpdateUser(userID int, req *models.UpdateUserRequest) (*models.User, error) {
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if email == "" {
			return nil, fmt.Errorf("email boş olamaz")
		}
		req.Email = &email
	}
	return s.userRepo.Update(userID, req)
}

// DeleteUser kullanıcıyı siler
func (s *UserService) DeleteUser(userID int) error {
	return s.userRepo.Delete(userID)
}

// GetAllUsers tüm kullanıcıları listeler
func (s *UserService) GetAllUsers(limit, offset int) ([]*models.User, int, error) {
	return s.userRepo.GetAll(limit, offset)
}
