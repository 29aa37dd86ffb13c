package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestParseRole(t *testing.T) {
	t.Run("case-insensitive known roles", func(t *testing.T) {
		for in, want := range map[string]Role{
			"customer": RoleCustomer,
			"Customer": RoleCustomer,
			"SELLER":   RoleSeller,
			" seller ": RoleSeller,
		} {
			role, err := ParseRole(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, role)
		}
	})

	t.Run("unknown role is rejected, not routed to seller", func(t *testing.T) {
		_, err := ParseRole("admin")
		assert.Error(t, err)
		_, err = ParseRole("")
		assert.Error(t, err)
	})
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	t.Run("insert and read back", func(t *testing.T) {
		user, err := s.CreateUser("alice@example.com", "hash1", RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Username)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.NotZero(t, user.ID)
	})

	t.Run("duplicate within partition conflicts", func(t *testing.T) {
		_, err := s.CreateUser("alice@example.com", "hash2", RoleCustomer)
		assert.ErrorIs(t, err, ErrDuplicateUser)
	})

	t.Run("same username in the other partition is allowed", func(t *testing.T) {
		user, err := s.CreateUser("alice@example.com", "hash3", RoleSeller)
		require.NoError(t, err)
		assert.Equal(t, RoleSeller, user.Role)
	})
}

func TestGetUser(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateUser("bob@example.com", "hash", RoleSeller)
	require.NoError(t, err)

	t.Run("lookup scoped to partition", func(t *testing.T) {
		user, err := s.GetUser("bob@example.com", RoleSeller)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "hash", user.PasswordHash)

		// Same username, wrong partition.
		user, err = s.GetUser("bob@example.com", RoleCustomer)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("missing user is nil, not an error", func(t *testing.T) {
		user, err := s.GetUser("nobody@example.com", RoleSeller)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestCountUsers(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateUser("a@example.com", "h", RoleCustomer)
	require.NoError(t, err)
	_, err = s.CreateUser("b@example.com", "h", RoleCustomer)
	require.NoError(t, err)

	n, err := s.CountUsers(RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CountUsers(RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
