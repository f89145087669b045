// AngelaMos | 2026
// fake_repository_test.go

package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

// fakeRepository keeps users in memory and enforces the same unique columns
// as the schema.
type fakeRepository struct {
	mu     sync.Mutex
	users  map[int64]*User
	nextID int64

	connStatus string
	saveErr    error
	getErr     error
	nilOnSave  bool

	saveCalls   int
	getCalls    int
	updateCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[int64]*User),
		connStatus: core.StatusConnected,
	}
}

func (f *fakeRepository) CheckConnection(_ context.Context) string {
	return f.connStatus
}

func (f *fakeRepository) Save(_ context.Context, u *User) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saveCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.nilOnSave {
		return nil, nil
	}

	for _, existing := range f.users {
		if sameValue(existing.Username, u.Username) ||
			sameValue(existing.Email, u.Email) ||
			sameValue(existing.PhoneNumber, u.PhoneNumber) {
			return nil, fmt.Errorf("save user: %w", core.ErrDuplicateKey)
		}
	}

	f.nextID++
	stored := cloneUser(u)
	stored.ID = f.nextID
	if stored.Address != nil {
		stored.Address.ID = f.nextID
	}
	f.users[stored.ID] = stored

	return cloneUser(stored), nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}

	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (f *fakeRepository) Update(_ context.Context, id int64, p Patch) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls++

	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("update user: %w", core.ErrNotFound)
	}

	for otherID, other := range f.users {
		if otherID == id {
			continue
		}
		if sameValue(other.Username, p.Username) || sameValue(other.Email, p.Email) {
			return nil, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
	}

	mergeString(&u.Username, p.Username)
	mergeString(&u.Email, p.Email)
	mergeString(&u.FirstName, p.FirstName)
	mergeString(&u.LastName, p.LastName)
	mergeString(&u.PhoneNumber, p.PhoneNumber)
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if !p.Address.IsEmpty() {
		if u.Address == nil {
			u.Address = &Address{ID: id}
		}
		mergeString(&u.Address.Street, p.Address.Street)
		mergeString(&u.Address.City, p.Address.City)
		mergeString(&u.Address.State, p.Address.State)
		mergeString(&u.Address.Country, p.Address.Country)
		mergeString(&u.Address.PostalCode, p.Address.PostalCode)
	}
	u.UpdatedAt = u.UpdatedAt.Add(time.Second)

	return cloneUser(u), nil
}

func (f *fakeRepository) writeCalls() int {
	return f.saveCalls + f.updateCalls
}

func sameValue(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func mergeString(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func cloneUser(u *User) *User {
	c := *u
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	return &c
}

func strPtr(s string) *string {
	return &s
}
