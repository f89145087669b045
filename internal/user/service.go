// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

type Service struct {
	repo   Repository
	tracer trace.Tracer
}

// NewService uses a no-op tracer when tracer is nil.
func NewService(repo Repository, tracer trace.Tracer) *Service {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Service{repo: repo, tracer: tracer}
}

// Register persists a new user. Conflicts from storage are returned
// unchanged so callers can match core.ErrDuplicateKey.
func (s *Service) Register(ctx context.Context, u *User) (*User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Register")
	defer span.End()

	if !u.HasContact() {
		return nil, fmt.Errorf(
			"register user: email or phone number required: %w",
			core.ErrInvalidInput,
		)
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		core.SetSpanError(span, err)
		return nil, err
	}
	if saved == nil {
		err = fmt.Errorf("register user: no row returned: %w", core.ErrInternal)
		core.SetSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("user.id", saved.ID))
	return saved, nil
}

// Get returns (nil, nil) when the user does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Get",
		trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		core.SetSpanError(span, err)
		return nil, err
	}

	return u, nil
}

func (s *Service) Update(
	ctx context.Context,
	id int64,
	patch Patch,
) (*User, error) {
	ctx, span := s.tracer.Start(ctx, "user.Update",
		trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	if patch.IsEmpty() {
		return nil, fmt.Errorf(
			"update user: at least one field must be provided: %w",
			core.ErrInvalidInput,
		)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		core.SetSpanError(span, err)
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("update user %d: %w", id, core.ErrNotFound)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		core.SetSpanError(span, err)
		return nil, err
	}
	if updated == nil {
		err = fmt.Errorf("update user %d: no row returned: %w", id, core.ErrInternal)
		core.SetSpanError(span, err)
		return nil, err
	}

	return updated, nil
}
