// AngelaMos | 2026
// entity.go

package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleStaff      Role = "STAFF"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusDeleted   Status = "DELETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Address has no lifecycle of its own. It is written only as part of the
// owning user's write.
type Address struct {
	ID         int64
	Street     *string
	City       *string
	State      *string
	Country    *string
	PostalCode *string
}

// User is the domain representation. ID is zero until storage assigns one.
type User struct {
	ID          int64
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *Address
	Role        Role
	Status      Status
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyDefaults fills role, status and timestamps left unset. Both
// timestamps receive the same instant.
func (u *User) ApplyDefaults(now time.Time) {
	if u.Role == "" {
		u.Role = RoleGuest
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
}

func (u *User) HasContact() bool {
	return nonEmpty(u.Email) || nonEmpty(u.PhoneNumber)
}

type AddressPatch struct {
	Street     *string
	City       *string
	State      *string
	Country    *string
	PostalCode *string
}

func (p *AddressPatch) IsEmpty() bool {
	return p == nil ||
		(p.Street == nil &&
			p.City == nil &&
			p.State == nil &&
			p.Country == nil &&
			p.PostalCode == nil)
}

// Patch is a sparse update. A nil field leaves the stored column unchanged.
type Patch struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *AddressPatch
	Role        *Role
	Status      *Status
}

func (p Patch) IsEmpty() bool {
	return p.Username == nil &&
		p.Email == nil &&
		p.FirstName == nil &&
		p.LastName == nil &&
		p.PhoneNumber == nil &&
		p.Role == nil &&
		p.Status == nil &&
		p.Address.IsEmpty()
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
