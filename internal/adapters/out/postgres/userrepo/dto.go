// Package userrepo provides data transfer objects and mapping functions for
// user persistence.
package userrepo

import (
	"time"

	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:text"`
	UserType     string    `gorm:"type:varchar(16);index"`
	IsVerified   bool
	IsAvailable  bool
	ActiveOrders int

	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user domain aggregate to its database representation.
func fromDomain(aggregate *user.User) UserDTO {
	return UserDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		UserType:     aggregate.Type().String(),
		IsVerified:   aggregate.IsVerified(),
		IsAvailable:  aggregate.IsAvailable(),
		ActiveOrders: aggregate.ActiveOrders(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a user domain aggregate.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Name,
		user.UserType(dto.UserType),
		dto.IsVerified,
		dto.IsAvailable,
		dto.ActiveOrders,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
