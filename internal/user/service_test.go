// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

func TestServiceRegisterDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	saved, err := svc.Register(context.Background(), ToDomain(RegistrationRequest{
		Username: strPtr("testuser"),
		Email:    strPtr("test@example.com"),
	}))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if saved.ID == 0 {
		t.Error("expected storage-assigned id")
	}
	if saved.Role != RoleGuest || saved.Status != StatusActive {
		t.Errorf("role/status = %q/%q", saved.Role, saved.Status)
	}
}

func TestServiceRegisterPhoneOnly(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	saved, err := svc.Register(context.Background(), ToDomain(RegistrationRequest{
		PhoneNumber: strPtr("5551234"),
	}))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if saved.Email != nil {
		t.Errorf("email = %q, want nil", *saved.Email)
	}
}

func TestServiceRegisterRequiresContact(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.Register(context.Background(), ToDomain(RegistrationRequest{
		Username: strPtr("nocontact"),
	}))
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("save called %d times", repo.saveCalls)
	}
}

func TestServiceRegisterConflict(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)
	ctx := context.Background()

	first := RegistrationRequest{Username: strPtr("dup"), Email: strPtr("a@example.com")}
	if _, err := svc.Register(ctx, ToDomain(first)); err != nil {
		t.Fatalf("first register: %v", err)
	}

	second := RegistrationRequest{Username: strPtr("dup"), Email: strPtr("b@example.com")}
	_, err := svc.Register(ctx, ToDomain(second))
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if errors.Is(err, core.ErrInternal) {
		t.Error("conflict must not be reported as internal failure")
	}
}

func TestServiceRegisterNoRowIsInternal(t *testing.T) {
	repo := newFakeRepository()
	repo.nilOnSave = true
	svc := NewService(repo, nil)

	_, err := svc.Register(context.Background(), ToDomain(RegistrationRequest{
		Email: strPtr("test@example.com"),
	}))
	if !errors.Is(err, core.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestServiceRegisterPropagatesStorageError(t *testing.T) {
	repo := newFakeRepository()
	boom := errors.New("connection reset")
	repo.saveErr = boom
	svc := NewService(repo, nil)

	_, err := svc.Register(context.Background(), ToDomain(RegistrationRequest{
		Email: strPtr("test@example.com"),
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestServiceGetMissingIsNotAnError(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	u, err := svc.Get(context.Background(), 12345)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}

func TestServiceUpdateMissingSkipsWrite(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), 77, Patch{FirstName: strPtr("x")})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if repo.writeCalls() != 0 {
		t.Errorf("write path invoked %d times", repo.writeCalls())
	}
}

func TestServiceUpdateEmptyPatchRejected(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), 1, Patch{Address: &AddressPatch{}})
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.getCalls != 0 || repo.writeCalls() != 0 {
		t.Errorf("storage touched: get=%d write=%d", repo.getCalls, repo.writeCalls())
	}
}

func TestServiceUpdateMergesFields(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	ctx := context.Background()

	saved, err := svc.Register(ctx, ToDomain(RegistrationRequest{
		Username:  strPtr("testuser"),
		Email:     strPtr("test@example.com"),
		FirstName: strPtr("Old"),
	}))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	role := RoleStaff
	updated, err := svc.Update(ctx, saved.ID, Patch{
		FirstName: strPtr("New"),
		Role:      &role,
		Address:   &AddressPatch{City: strPtr("Lyon")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if *updated.FirstName != "New" || updated.Role != RoleStaff {
		t.Errorf("first name/role = %q/%q", *updated.FirstName, updated.Role)
	}
	if *updated.Username != "testuser" || *updated.Email != "test@example.com" {
		t.Error("unset fields must be left unchanged")
	}
	if updated.Address == nil || *updated.Address.City != "Lyon" {
		t.Errorf("address = %+v", updated.Address)
	}
	if updated.ID != saved.ID {
		t.Errorf("id changed from %d to %d", saved.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(saved.CreatedAt) {
		t.Error("created_at must not change")
	}
	if !updated.UpdatedAt.After(saved.UpdatedAt) {
		t.Error("updated_at must advance")
	}
}

func TestServiceUpdateLookupErrorNotMaskedAsMissing(t *testing.T) {
	repo := newFakeRepository()
	repo.getErr = errors.New("timeout")
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), 1, Patch{LastName: strPtr("y")})
	if err == nil || errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Error("update should not run after failed lookup")
	}
}

func TestServiceRecordsSpansOnInjectedTracer(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	repo := newFakeRepository()
	repo.saveErr = errors.New("disk full")
	svc := NewService(repo, tp.Tracer("user"))

	_, _ = svc.Register(context.Background(), ToDomain(RegistrationRequest{
		Email: strPtr("test@example.com"),
	}))

	ended := rec.Ended()
	if len(ended) != 1 || ended[0].Name() != "user.Register" {
		t.Fatalf("ended spans = %v", ended)
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("span status = %+v, want error", ended[0].Status())
	}
}
