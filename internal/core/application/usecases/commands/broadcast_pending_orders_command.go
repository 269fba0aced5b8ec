package commands

import (
	"errors"
	"time"

	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrBroadcastPendingOrdersCommandIsNotConstructed = errors.New(
	"BroadcastPendingOrdersCommand must be created via NewBroadcastPendingOrdersCommand constructor",
)

// BroadcastPendingOrdersCommand represents a request to re-announce pending
// orders that no transporter has claimed within the stale window.
type BroadcastPendingOrdersCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration
	limit      int

	guard guard.ConstructorGuard
}

// NewBroadcastPendingOrdersCommand creates a command to re-announce stale
// pending orders. staleAfter is how long an order may sit unclaimed before it
// is re-announced; limit caps the batch size per run.
func NewBroadcastPendingOrdersCommand(staleAfter time.Duration, limit int) (BroadcastPendingOrdersCommand, error) {
	cmd := BroadcastPendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setStaleAfter(staleAfter),
		cmd.setLimit(limit),
	); err != nil {
		return BroadcastPendingOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BroadcastPendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastPendingOrdersCommandIsNotConstructed)
}

// StaleAfter returns how long an order may sit unclaimed before re-announcement.
func (c BroadcastPendingOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// Limit returns the maximum number of orders re-announced per run.
func (c BroadcastPendingOrdersCommand) Limit() int {
	return c.limit
}

func (c *BroadcastPendingOrdersCommand) setStaleAfter(staleAfter time.Duration) error {
	if staleAfter <= 0 {
		return errs.NewValueIsRequiredError("staleAfter")
	}
	c.staleAfter = staleAfter
	return nil
}

func (c *BroadcastPendingOrdersCommand) setLimit(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsRequiredError("limit")
	}
	c.limit = limit
	return nil
}
