package services

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/oliverbeck/peakstatus/internal/dto"
	"github.com/oliverbeck/peakstatus/internal/models"
	"github.com/oliverbeck/peakstatus/internal/store"
	"github.com/oliverbeck/peakstatus/internal/token"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so the two causes are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,50}$`)

const minPasswordLength = 6

type AuthService struct {
	users *store.UserStore
	codec *token.Codec
}

func NewAuthService(users *store.UserStore, codec *token.Codec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// Login verifies credentials and issues a token. The last_login update must
// succeed before the response is returned.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}
	if user == nil || !s.users.ValidatePassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	fresh, err := s.users.FindByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	if fresh != nil {
		user = fresh
	}

	tok, err := s.codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.LoginResponse{
		Token: tok,
		User:  dto.NewUserResponse(user),
	}, nil
}

// Register creates a self-service account. The role is always viewer no
// matter what the caller supplied; public registration can never mint an
// admin.
func (s *AuthService) Register(username, password string) (*dto.UserResponse, error) {
	return s.createUser(username, password, models.RoleViewer)
}

// CreateUserAsAdmin creates an account with a caller-chosen role. Reachable
// only through the admin-gated route; this service does not re-check the
// caller's identity.
func (s *AuthService) CreateUserAsAdmin(username, password string, role models.Role) (*dto.UserResponse, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be admin or viewer", ErrValidation)
	}
	return s.createUser(username, password, role)
}

func (s *AuthService) createUser(username, password string, role models.Role) (*dto.UserResponse, error) {
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-50 characters of letters, digits, hyphen or underscore", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.users.Create(username, password, role)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetUser returns the redacted user, or ErrNotFound.
func (s *AuthService) GetUser(id uint) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

func (s *AuthService) ListAdmins() ([]dto.UserResponse, error) {
	admins, err := s.users.ListAdmins()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(admins))
	for i := range admins {
		out = append(out, dto.NewUserResponse(&admins[i]))
	}
	return out, nil
}

// DeleteUser removes the account. Outstanding tokens stay valid until
// expiry; validity is purely cryptographic.
func (s *AuthService) DeleteUser(id uint) error {
	deleted, err := s.users.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return nil
}

// EnsureAdmin seeds the admin account on boot when configured. Public
// registration forces viewer, so this is the only path to the first admin.
func (s *AuthService) EnsureAdmin(username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	existing, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if _, err := s.createUser(username, password, models.RoleAdmin); err != nil {
		return err
	}
	slog.Info("admin account seeded", "username", username)
	return nil
}
