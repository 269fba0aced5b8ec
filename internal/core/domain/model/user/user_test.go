package user_test

import (
	"testing"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create valid user with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.NewUser(id, "Alice", user.UserTypeTransporter, now)

		require.NoError(t, err)
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "Alice", u.Name())
		assert.Equal(t, user.UserTypeTransporter, u.Type())
		assert.True(t, u.IsTransporter())
		assert.False(t, u.IsVerified())
		assert.True(t, u.IsAvailable())
		assert.Equal(t, 0, u.ActiveOrders())
		require.NoError(t, u.Validate())
	})

	t.Run("should return error with empty name", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "", user.UserTypeCustomer, now)

		require.ErrorIs(t, err, user.ErrNameIsRequired)
	})

	t.Run("should return error with unknown user type", func(t *testing.T) {
		_, err := user.NewUser(kernel.NewUUID(), "Alice", user.UserType("dispatcher"), now)

		require.Error(t, err)
	})
}

func TestRestoreUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should restore user with persisted state", func(t *testing.T) {
		id := kernel.NewUUID()

		u, err := user.RestoreUser(id, "Bob", user.UserTypeTransporter, true, false, 3, now, now.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, u.IsVerified())
		assert.False(t, u.IsAvailable())
		assert.Equal(t, 3, u.ActiveOrders())
		assert.Equal(t, now, u.CreatedAt())
		assert.Equal(t, now.Add(time.Hour), u.UpdatedAt())
	})

	t.Run("should return error with negative active orders", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "Bob", user.UserTypeTransporter, false, true, -1, now, now)

		require.Error(t, err)
	})
}

func TestUser_ActiveOrders(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should increment and decrement the counter", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Alice", user.UserTypeTransporter, now)
		require.NoError(t, err)

		require.NoError(t, u.IncrementActiveOrders(now.Add(time.Minute)))
		require.NoError(t, u.IncrementActiveOrders(now.Add(2*time.Minute)))
		assert.Equal(t, 2, u.ActiveOrders())

		require.NoError(t, u.DecrementActiveOrders(now.Add(3*time.Minute)))
		assert.Equal(t, 1, u.ActiveOrders())
		assert.Equal(t, now.Add(3*time.Minute), u.UpdatedAt())
	})

	t.Run("should reject decrement below zero", func(t *testing.T) {
		u, err := user.NewUser(kernel.NewUUID(), "Alice", user.UserTypeTransporter, now)
		require.NoError(t, err)

		require.ErrorIs(t, u.DecrementActiveOrders(now), user.ErrNoActiveOrders)
		assert.Equal(t, 0, u.ActiveOrders())
	})
}

func TestUser_Availability(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u, err := user.NewUser(kernel.NewUUID(), "Alice", user.UserTypeTransporter, now)
	require.NoError(t, err)

	require.NoError(t, u.SetAvailability(false, now.Add(time.Minute)))
	assert.False(t, u.IsAvailable())

	require.NoError(t, u.SetAvailability(true, now.Add(2*time.Minute)))
	assert.True(t, u.IsAvailable())
}

func TestUser_MarkVerified(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	u, err := user.NewUser(kernel.NewUUID(), "Alice", user.UserTypeCustomer, now)
	require.NoError(t, err)

	require.NoError(t, u.MarkVerified(now.Add(time.Minute)))
	assert.True(t, u.IsVerified())
}

func TestUser_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var u user.User

		require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	})
}
