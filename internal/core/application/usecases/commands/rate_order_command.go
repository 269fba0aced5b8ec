package commands

import (
	"errors"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents a post-delivery rating submitted by one party.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actorID  kernel.UUID
	score    int
	feedback string

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate a delivered order.
// The score must be within the permitted rating range.
func NewRateOrderCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	score int,
	feedback string,
) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setScore(score),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the rated order.
func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the rating user.
func (c RateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Score returns the rating score.
func (c RateOrderCommand) Score() int {
	return c.score
}

// Feedback returns the optional free-text feedback.
func (c RateOrderCommand) Feedback() string {
	return c.feedback
}

func (c *RateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *RateOrderCommand) setScore(score int) error {
	if score < order.RatingMin || score > order.RatingMax {
		return errs.NewValueIsOutOfRangeError("score", score, order.RatingMin, order.RatingMax)
	}
	c.score = score
	return nil
}
