package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/oliverbeck/peakstatus/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrDuplicateUsername = errors.New("username already taken")

// bcrypt cost 12 to keep offline brute force expensive.
const bcryptCost = 12

// UserStore persists account credentials. Password hashes never cross this
// boundary except as the opaque PasswordHash column.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByUsername returns (nil, nil) when no such user exists; absence is an
// expected outcome, not an error.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create hashes the plaintext password and inserts the user. Fails with
// ErrDuplicateUsername when the username is taken.
func (s *UserStore) Create(username, password string, role models.Role) (*models.User, error) {
	existing, err := s.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// ValidatePassword compares via bcrypt's own constant-time verify.
func (s *UserStore) ValidatePassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// UpdateLastLogin must complete before the login response is returned so
// last_login stays causally consistent with the login that just succeeded.
func (s *UserStore) UpdateLastLogin(id uint) error {
	now := time.Now().UTC()
	return s.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", now).Error
}

func (s *UserStore) ListAll() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (s *UserStore) ListAdmins() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("role = ?", models.RoleAdmin).Order("username ASC").Find(&users).Error
	return users, err
}

// Delete reports whether a row was actually removed.
func (s *UserStore) Delete(id uint) (bool, error) {
	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
