package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopmate/internal/store"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	dbStore, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbStore.Close() })
	return NewAuthService(dbStore, zap.NewNop())
}

const testPassword = "Aa1!aaaa"

func TestRegister(t *testing.T) {
	s := newTestAuthService(t)

	t.Run("valid registration", func(t *testing.T) {
		msg, err := s.Register("alice@example.com", testPassword, store.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, "User added successfully to customer collection", msg)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, err := s.Register("alice@example.com", testPassword, store.RoleCustomer)
		assert.ErrorIs(t, err, store.ErrDuplicateUser)
	})

	t.Run("same identifier in the other partition succeeds", func(t *testing.T) {
		msg, err := s.Register("alice@example.com", testPassword, store.RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, "User added successfully to seller collection", msg)
	})

	t.Run("missing fields", func(t *testing.T) {
		var validationErr *ValidationError
		_, err := s.Register("", testPassword, store.RoleCustomer)
		assert.ErrorAs(t, err, &validationErr)
		_, err = s.Register("alice@example.com", "", store.RoleCustomer)
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("malformed email", func(t *testing.T) {
		var validationErr *ValidationError
		_, err := s.Register("not-an-email", testPassword, store.RoleCustomer)
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Invalid email format", validationErr.Msg)
	})

	t.Run("weak password", func(t *testing.T) {
		var validationErr *ValidationError
		_, err := s.Register("bob@example.com", "weakpass", store.RoleCustomer)
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("password is not stored in plaintext", func(t *testing.T) {
		dbStore, err := store.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		defer dbStore.Close()

		svc := NewAuthService(dbStore, zap.NewNop())
		_, err = svc.Register("carol@example.com", testPassword, store.RoleCustomer)
		require.NoError(t, err)

		user, err := dbStore.GetUser("carol@example.com", store.RoleCustomer)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, testPassword, user.PasswordHash)
	})
}

func TestLogin(t *testing.T) {
	s := newTestAuthService(t)
	_, err := s.Register("alice@example.com", testPassword, store.RoleCustomer)
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		msg, err := s.Login("alice@example.com", testPassword, store.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, "Login successful as customer", msg)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login("alice@example.com", "Aa1!bbbb", store.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := s.Login("nobody@example.com", testPassword, store.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong role partition", func(t *testing.T) {
		_, err := s.Login("alice@example.com", testPassword, store.RoleSeller)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		var validationErr *ValidationError
		_, err := s.Login("", testPassword, store.RoleCustomer)
		assert.ErrorAs(t, err, &validationErr)
	})
}
