package guard_test

import (
	"errors"
	"testing"

	"haulage/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		notConstructed := errors.New("claim must be created via its constructor")

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, err.Error(), "constructor")
	})
}

// The guard's purpose is making zero-value commands detectable: a handler can
// refuse a command that bypassed its constructor without the command carrying
// any public construction state.
func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errClaimNotConstructed := errors.New("ClaimCommand must be created via newClaimCommand")

	type ClaimCommand struct {
		transporter string
		guard       guard.ConstructorGuard
	}

	newClaimCommand := func(transporter string) (ClaimCommand, error) {
		if transporter == "" {
			return ClaimCommand{}, errors.New("transporter is required")
		}
		return ClaimCommand{
			transporter: transporter,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructed command validates", func(t *testing.T) {
		cmd, err := newClaimCommand("t-1")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errClaimNotConstructed))
	})

	t.Run("zero-value command is rejected", func(t *testing.T) {
		var cmd ClaimCommand

		err := cmd.guard.Validate(errClaimNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errClaimNotConstructed, err)
	})

	t.Run("guard survives copies, so commands can pass by value", func(t *testing.T) {
		cmd, err := newClaimCommand("t-1")
		require.NoError(t, err)

		copied := cmd

		require.NoError(t, copied.guard.Validate(errClaimNotConstructed))
	})
}
