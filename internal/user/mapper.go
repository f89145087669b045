// AngelaMos | 2026
// mapper.go

package user

import (
	"database/sql"
	"fmt"
	"time"
)

// userRow holds the columns of one "user" row as the driver returns them.
type userRow struct {
	ID          int64         `db:"id"`
	Username    *string       `db:"username"`
	Email       *string       `db:"email"`
	FirstName   *string       `db:"first_name"`
	LastName    *string       `db:"last_name"`
	PhoneNumber *string       `db:"phone_number"`
	AddressID   sql.NullInt64 `db:"address_id"`
	Role        string        `db:"role"`
	Status      string        `db:"status"`
	LastLoginAt *time.Time    `db:"last_login_at"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type addressRow struct {
	ID         int64   `db:"id"`
	Street     *string `db:"street"`
	City       *string `db:"city"`
	State      *string `db:"state"`
	PostalCode *string `db:"postal_code"`
	Country    *string `db:"country"`
}

// ToDomain converts a registration request, defaulting role and status and
// stamping both timestamps with the current time.
func ToDomain(req RegistrationRequest) *User {
	u := &User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     addressFromPayload(req.Address),
	}

	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Status != nil {
		u.Status = *req.Status
	}

	u.ApplyDefaults(time.Now().UTC())
	return u
}

func ToPatch(req UpdateUserRequest) Patch {
	p := Patch{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
		Status:      req.Status,
	}

	if req.Address != nil {
		p.Address = &AddressPatch{
			Street:     req.Address.Street,
			City:       req.Address.City,
			State:      req.Address.State,
			Country:    req.Address.Country,
			PostalCode: req.Address.PostalCode,
		}
	}

	return p
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Address:     addressToPayload(u.Address),
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// BuildFromRow reassembles a user from stored columns and its already
// fetched address. Role and status outside the enumerations are rejected.
func BuildFromRow(row userRow, addr *Address) (*User, error) {
	role, err := ParseRole(row.Role)
	if err != nil {
		return nil, fmt.Errorf("build user %d: %w", row.ID, err)
	}

	status, err := ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("build user %d: %w", row.ID, err)
	}

	return &User{
		ID:          row.ID,
		Username:    row.Username,
		Email:       row.Email,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		PhoneNumber: row.PhoneNumber,
		Address:     addr,
		Role:        role,
		Status:      status,
		LastLoginAt: row.LastLoginAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r addressRow) toDomain() *Address {
	return &Address{
		ID:         r.ID,
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

func addressFromPayload(p *AddressPayload) *Address {
	if p == nil {
		return nil
	}
	return &Address{
		Street:     p.Street,
		City:       p.City,
		State:      p.State,
		Country:    p.Country,
		PostalCode: p.PostalCode,
	}
}

func addressToPayload(a *Address) *AddressPayload {
	if a == nil {
		return nil
	}
	return &AddressPayload{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
