// AngelaMos | 2026
// mapper_test.go

package user

import (
	"database/sql"
	"reflect"
	"testing"
	"time"
)

func TestToDomainDefaults(t *testing.T) {
	u := ToDomain(RegistrationRequest{
		Username: strPtr("testuser"),
		Email:    strPtr("test@example.com"),
	})

	if u.Role != RoleGuest {
		t.Errorf("role = %q, want %q", u.Role, RoleGuest)
	}
	if u.Status != StatusActive {
		t.Errorf("status = %q, want %q", u.Status, StatusActive)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("created_at should be set")
	}
	if !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v", u.CreatedAt, u.UpdatedAt)
	}
	if u.Address != nil {
		t.Errorf("address should be nil, got %+v", u.Address)
	}
	if u.ID != 0 {
		t.Errorf("id should be unassigned, got %d", u.ID)
	}
}

func TestToDomainKeepsExplicitEnums(t *testing.T) {
	role := RoleStaff
	status := StatusSuspended

	u := ToDomain(RegistrationRequest{
		PhoneNumber: strPtr("5551234"),
		Role:        &role,
		Status:      &status,
	})

	if u.Role != RoleStaff || u.Status != StatusSuspended {
		t.Errorf("got role=%q status=%q", u.Role, u.Status)
	}
}

func TestMapperRoundTrip(t *testing.T) {
	role := RoleAdmin
	status := StatusInactive
	req := RegistrationRequest{
		Username:    strPtr("testuser"),
		Email:       strPtr("test@example.com"),
		FirstName:   strPtr("Test"),
		LastName:    strPtr("User"),
		PhoneNumber: strPtr("1234567890"),
		Address: &AddressPayload{
			Street:     strPtr("123 Test St"),
			City:       strPtr("Test City"),
			State:      strPtr("Test State"),
			Country:    strPtr("Test Country"),
			PostalCode: strPtr("12345"),
		},
		Role:   &role,
		Status: &status,
	}

	u := ToDomain(req)
	if got := *u.Address.PostalCode; got != "12345" {
		t.Fatalf("postal code = %q", got)
	}

	resp := ToUserResponse(u)

	if !reflect.DeepEqual(resp.Address, req.Address) {
		t.Errorf("address = %+v, want %+v", resp.Address, req.Address)
	}
	checks := []struct {
		name      string
		got, want *string
	}{
		{"username", resp.Username, req.Username},
		{"email", resp.Email, req.Email},
		{"firstName", resp.FirstName, req.FirstName},
		{"lastName", resp.LastName, req.LastName},
		{"phoneNumber", resp.PhoneNumber, req.PhoneNumber},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != *c.want {
			t.Errorf("%s = %v, want %q", c.name, c.got, *c.want)
		}
	}
	if resp.Role != role || resp.Status != status {
		t.Errorf("role/status = %q/%q", resp.Role, resp.Status)
	}
	if !resp.CreatedAt.Equal(u.CreatedAt) || !resp.UpdatedAt.Equal(u.UpdatedAt) {
		t.Error("timestamps should pass through unchanged")
	}
}

func TestBuildFromRow(t *testing.T) {
	created := time.Date(2024, 11, 7, 18, 22, 38, 0, time.UTC)
	addr := &Address{ID: 9, City: strPtr("Anytown")}

	u, err := BuildFromRow(userRow{
		ID:        42,
		Username:  strPtr("testuser"),
		Email:     strPtr("test@example.com"),
		AddressID: sql.NullInt64{Int64: 9, Valid: true},
		Role:      "SUPER_ADMIN",
		Status:    "DELETED",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}, addr)
	if err != nil {
		t.Fatalf("BuildFromRow: %v", err)
	}

	if u.ID != 42 {
		t.Errorf("id = %d", u.ID)
	}
	if u.Role != RoleSuperAdmin || u.Status != StatusDeleted {
		t.Errorf("role/status = %q/%q", u.Role, u.Status)
	}
	if u.Address != addr {
		t.Error("address should be the one passed in")
	}
	if !u.UpdatedAt.Equal(created.Add(time.Hour)) {
		t.Errorf("updated_at = %v", u.UpdatedAt)
	}
}

func TestBuildFromRowRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name string
		row  userRow
	}{
		{"role", userRow{ID: 1, Role: "user", Status: "ACTIVE"}},
		{"status", userRow{ID: 1, Role: "GUEST", Status: "active"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildFromRow(tt.row, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestToPatch(t *testing.T) {
	status := StatusSuspended
	p := ToPatch(UpdateUserRequest{
		FirstName: strPtr("New"),
		Status:    &status,
		Address:   &AddressPayload{PostalCode: strPtr("99999")},
	})

	if p.FirstName == nil || *p.FirstName != "New" {
		t.Errorf("first name = %v", p.FirstName)
	}
	if p.Email != nil || p.Username != nil || p.Role != nil {
		t.Error("unset fields must stay nil")
	}
	if p.Status == nil || *p.Status != StatusSuspended {
		t.Errorf("status = %v", p.Status)
	}
	if p.Address == nil || *p.Address.PostalCode != "99999" || p.Address.City != nil {
		t.Errorf("address = %+v", p.Address)
	}
	if p.IsEmpty() {
		t.Error("patch should not be empty")
	}
}
