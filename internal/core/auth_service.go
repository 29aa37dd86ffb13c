package core

import (
	"fmt"

	"go.uber.org/zap"

	"shopmate/internal/auth"
	"shopmate/internal/store"
	"shopmate/internal/utils"
)

const passwordPolicyMsg = "Password must be at least 8 characters long, " +
	"contain uppercase and lowercase letters, a number, " +
	"and a special character"

type AuthService struct {
	dbStore *store.SQLiteStore
	logger  *zap.Logger
}

func NewAuthService(db *store.SQLiteStore, logger *zap.Logger) *AuthService {
	return &AuthService{dbStore: db, logger: logger}
}

// Register validates the credentials and inserts them into the role's
// partition. The password is stored as a bcrypt hash.
func (s *AuthService) Register(username, password string, role store.Role) (string, error) {
	if username == "" || password == "" {
		return "", &ValidationError{Msg: "Missing username, password, or role"}
	}
	if !utils.ValidEmail(username) {
		return "", &ValidationError{Msg: "Invalid email format"}
	}
	if !utils.ValidPassword(password) {
		return "", &ValidationError{Msg: passwordPolicyMsg}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.dbStore.CreateUser(username, hash, role); err != nil {
		return "", err
	}

	s.logger.Info("user registered", zap.String("role", string(role)))
	return fmt.Sprintf("User added successfully to %s collection", role), nil
}

// Login checks the credentials against the role's partition. Any mismatch
// returns ErrInvalidCredentials without distinguishing the failing field.
func (s *AuthService) Login(username, password string, role store.Role) (string, error) {
	if username == "" || password == "" {
		return "", &ValidationError{Msg: "Missing username, password, or role"}
	}

	user, err := s.dbStore.GetUser(username, role)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return fmt.Sprintf("Login successful as %s", role), nil
}
