package order_test

import (
	"errors"
	"testing"

	"haulage/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transitionTable mirrors the documented adjacency and is the oracle for the
// completeness test below.
var transitionTable = map[order.Status][]order.Status{
	order.StatusPending:         {order.StatusAccepted, order.StatusCancelled},
	order.StatusAccepted:        {order.StatusPickupScheduled, order.StatusCancelled},
	order.StatusPickupScheduled: {order.StatusEnRoutePickup, order.StatusCancelled},
	order.StatusEnRoutePickup:   {order.StatusArrivedPickup},
	order.StatusArrivedPickup:   {order.StatusPickedUp, order.StatusFailed},
	order.StatusPickedUp:        {order.StatusEnRouteDelivery},
	order.StatusEnRouteDelivery: {order.StatusArrivedDelivery},
	order.StatusArrivedDelivery: {order.StatusDelivered, order.StatusFailed},
	order.StatusDelivered:       {},
	order.StatusCancelled:       {},
	order.StatusFailed:          {order.StatusPending, order.StatusCancelled},
}

func contains(set []order.Status, s order.Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func TestStatus_TransitionCompleteness(t *testing.T) {
	// Every (from, to) pair in the full cross-product behaves exactly as the
	// table dictates: allowed pairs succeed, everything else is rejected with
	// an InvalidTransitionError.
	for from, allowed := range transitionTable {
		for _, to := range order.AllStatuses() {
			from, to, allowed := from, to, allowed
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				next, err := from.TransitionTo(to)

				if contains(allowed, to) {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				require.Error(t, err)
				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, from, next)

				var invalidErr *order.InvalidTransitionError
				require.ErrorAs(t, err, &invalidErr)
				assert.Equal(t, from, invalidErr.From)
				assert.Equal(t, to, invalidErr.To)
				assert.ElementsMatch(t, allowed, invalidErr.Allowed)
			})
		}
	}
}

func TestStatus_TerminalStates(t *testing.T) {
	t.Run("delivered and cancelled are terminal", func(t *testing.T) {
		assert.True(t, order.StatusDelivered.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.Empty(t, order.StatusDelivered.AllowedTransitions())
		assert.Empty(t, order.StatusCancelled.AllowedTransitions())
	})

	t.Run("all other states are non-terminal", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			if s == order.StatusDelivered || s == order.StatusCancelled {
				continue
			}
			assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
			assert.NotEmpty(t, s.AllowedTransitions(), "%s must have outgoing transitions", s)
		}
	})
}

func TestStatus_IsInTransit(t *testing.T) {
	inTransit := []order.Status{
		order.StatusAccepted,
		order.StatusPickupScheduled,
		order.StatusEnRoutePickup,
		order.StatusArrivedPickup,
		order.StatusPickedUp,
		order.StatusEnRouteDelivery,
		order.StatusArrivedDelivery,
	}
	for _, s := range order.AllStatuses() {
		assert.Equal(t, contains(inTransit, s), s.IsInTransit(), "status %s", s)
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("all defined statuses are valid", func(t *testing.T) {
		for _, s := range order.AllStatuses() {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("unknown status is invalid", func(t *testing.T) {
		err := order.Status("teleported").Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "teleported")
	})

	t.Run("empty status is invalid", func(t *testing.T) {
		require.Error(t, order.Status("").Validate())
	})
}

func TestStatus_TransitionTo_UnknownTarget(t *testing.T) {
	_, err := order.StatusPending.TransitionTo(order.Status("teleported"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, order.ErrInvalidTransition))
}

func TestInvalidTransitionError_Message(t *testing.T) {
	t.Run("carries allowed set", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.StatusAccepted, order.StatusPickedUp)

		assert.Contains(t, err.Error(), "accepted -> picked_up")
		assert.Contains(t, err.Error(), "pickup_scheduled")
		assert.Contains(t, err.Error(), "cancelled")
	})

	t.Run("names terminal origin", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.StatusDelivered, order.StatusPending)

		assert.Contains(t, err.Error(), "delivered is terminal")
	})
}
