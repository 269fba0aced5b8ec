package user

import (
	"errors"
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/pkg/errs"
	"haulage/internal/pkg/guard"
)

// UserType distinguishes the two marketplace roles.
type UserType string

const (
	// UserTypeCustomer places orders.
	UserTypeCustomer UserType = "customer"
	// UserTypeTransporter claims and fulfills orders.
	UserTypeTransporter UserType = "transporter"
)

// Validate checks that the user type is one of the defined roles.
func (t UserType) Validate() error {
	switch t {
	case UserTypeCustomer, UserTypeTransporter:
		return nil
	default:
		return errs.NewValueIsInvalidError("userType")
	}
}

func (t UserType) String() string {
	return string(t)
}

var (
	// ErrNameIsRequired is returned when attempting to create a user without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")
	// ErrNoActiveOrders is returned when decrementing an already-zero active order counter.
	ErrNoActiveOrders = errors.New("user has no active orders")
)

// User represents a marketplace participant: a customer who places orders or a
// transporter who fulfills them.
//
// For transporters the aggregate tracks availability and the count of orders they
// are currently working; the count moves in lockstep with order claims and
// completions so matching can skip transporters that are already loaded.
type User struct {
	id          kernel.UUID
	name        string
	userType    UserType
	isVerified  bool
	isAvailable bool

	activeOrders int

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewUser creates a new User with the specified role.
// Fresh users start unverified, available, and with no active orders.
func NewUser(id kernel.UUID, name string, userType UserType, now time.Time) (*User, error) {
	u := &User{
		isAvailable: true,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setUserType(userType),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User aggregate from persistent storage.
func RestoreUser(
	id kernel.UUID,
	name string,
	userType UserType,
	isVerified bool,
	isAvailable bool,
	activeOrders int,
	createdAt time.Time,
	updatedAt time.Time,
) (*User, error) {
	u := &User{
		isVerified:  isVerified,
		isAvailable: isAvailable,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setUserType(userType),
	); err != nil {
		return nil, err
	}

	if activeOrders < 0 {
		return nil, errs.NewValueIsInvalidError("activeOrders")
	}
	u.activeOrders = activeOrders

	return u, nil
}

// Validate ensures the User instance was properly constructed through a factory method.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Type returns the user's marketplace role.
func (u *User) Type() UserType {
	return u.userType
}

// IsCustomer reports whether the user places orders.
func (u *User) IsCustomer() bool {
	return u.userType == UserTypeCustomer
}

// IsTransporter reports whether the user fulfills orders.
func (u *User) IsTransporter() bool {
	return u.userType == UserTypeTransporter
}

// IsVerified reports whether the user passed identity verification.
func (u *User) IsVerified() bool {
	return u.isVerified
}

// IsAvailable reports whether a transporter is open to new work.
func (u *User) IsAvailable() bool {
	return u.isAvailable
}

// ActiveOrders returns the number of orders the user is currently working.
func (u *User) ActiveOrders() int {
	return u.activeOrders
}

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// MarkVerified flags the user as identity-verified.
func (u *User) MarkVerified(now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	u.isVerified = true
	u.updatedAt = now
	return nil
}

// SetAvailability toggles whether a transporter is open to new work.
func (u *User) SetAvailability(available bool, now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	u.isAvailable = available
	u.updatedAt = now
	return nil
}

// IncrementActiveOrders bumps the active order counter when the user takes on
// an order: a transporter claims one, or a customer's order is created.
func (u *User) IncrementActiveOrders(now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	u.activeOrders++
	u.updatedAt = now
	return nil
}

// DecrementActiveOrders releases one active order slot when an order reaches a
// terminal outcome or the user is unassigned from it.
func (u *User) DecrementActiveOrders(now time.Time) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.activeOrders == 0 {
		return ErrNoActiveOrders
	}
	u.activeOrders--
	u.updatedAt = now
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setUserType(userType UserType) error {
	if err := userType.Validate(); err != nil {
		return err
	}
	u.userType = userType
	return nil
}
