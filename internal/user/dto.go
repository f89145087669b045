// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// AddressPayload is the wire shape of an address in both directions.
type AddressPayload struct {
	Street     *string `json:"street"     validate:"omitempty,max=255"`
	City       *string `json:"city"       validate:"omitempty,max=100"`
	State      *string `json:"state"      validate:"omitempty,max=100"`
	Country    *string `json:"country"    validate:"omitempty,max=100"`
	PostalCode *string `json:"postalCode" validate:"omitempty,max=20"`
}

type RegistrationRequest struct {
	Username    *string         `json:"username"    validate:"omitempty,min=1,max=50"`
	Email       *string         `json:"email"       validate:"omitempty,email,max=255"`
	FirstName   *string         `json:"firstName"   validate:"omitempty,max=100"`
	LastName    *string         `json:"lastName"    validate:"omitempty,max=100"`
	PhoneNumber *string         `json:"phoneNumber" validate:"omitempty,min=3,max=20"`
	Address     *AddressPayload `json:"address"`
	Role        *Role           `json:"role"        validate:"omitempty,oneof=GUEST STAFF ADMIN SUPER_ADMIN"`
	Status      *Status         `json:"status"      validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED DELETED"`
}

// HasContact reports whether an email or phone number was supplied. Empty
// strings count as absent.
func (r *RegistrationRequest) HasContact() bool {
	return nonEmpty(r.Email) || nonEmpty(r.PhoneNumber)
}

type UpdateUserRequest struct {
	Username    *string         `json:"username"    validate:"omitempty,min=1,max=50"`
	Email       *string         `json:"email"       validate:"omitempty,email,max=255"`
	FirstName   *string         `json:"firstName"   validate:"omitempty,max=100"`
	LastName    *string         `json:"lastName"    validate:"omitempty,max=100"`
	PhoneNumber *string         `json:"phoneNumber" validate:"omitempty,min=3,max=20"`
	Address     *AddressPayload `json:"address"`
	Role        *Role           `json:"role"        validate:"omitempty,oneof=GUEST STAFF ADMIN SUPER_ADMIN"`
	Status      *Status         `json:"status"      validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED DELETED"`
}

type UserResponse struct {
	ID          int64           `json:"id"`
	Username    *string         `json:"username"`
	Email       *string         `json:"email"`
	FirstName   *string         `json:"firstName"`
	LastName    *string         `json:"lastName"`
	PhoneNumber *string         `json:"phoneNumber"`
	Address     *AddressPayload `json:"address"`
	Role        Role            `json:"role"`
	Status      Status          `json:"status"`
	LastLoginAt *time.Time      `json:"lastLoginAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
