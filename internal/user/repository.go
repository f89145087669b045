// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

type Repository interface {
	CheckConnection(ctx context.Context) string
	Save(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
}

type repository struct {
	db  *core.Database
	now func() time.Time
}

func NewRepository(db *core.Database) Repository {
	return &repository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const userColumns = `id, username, email, first_name, last_name, phone_number,
	address_id, role, status, last_login_at, created_at, updated_at`

func (r *repository) CheckConnection(ctx context.Context) string {
	return r.db.CheckConnection(ctx)
}

func (r *repository) Save(ctx context.Context, user *User) (*User, error) {
	in := *user
	in.ApplyDefaults(r.now())

	var saved *User
	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var (
			addressID sql.NullInt64
			addr      *Address
		)

		if in.Address != nil {
			id, err := insertAddress(ctx, tx, in.Address)
			if err != nil {
				return err
			}
			addressID = sql.NullInt64{Int64: id, Valid: true}

			stored := *in.Address
			stored.ID = id
			addr = &stored
		}

		query := `
			INSERT INTO "user" (
				username, email, first_name, last_name, phone_number,
				address_id, role, status, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			)
			RETURNING ` + userColumns

		var row userRow
		err := tx.GetContext(ctx, &row, query,
			in.Username,
			in.Email,
			in.FirstName,
			in.LastName,
			in.PhoneNumber,
			addressID,
			string(in.Role),
			string(in.Status),
			in.CreatedAt,
			in.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		saved, err = BuildFromRow(row, addr)
		return err
	})
	if err != nil {
		if core.IsUniqueViolation(err) {
			return nil, fmt.Errorf("save user: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}

	return saved, nil
}

// GetByID returns (nil, nil) when no user has the given id.
func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

	var row userRow
	err := r.db.DB.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	addr, err := getAddress(ctx, r.db.DB, row.AddressID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return BuildFromRow(row, addr)
}

// Update merges patch into the stored user and its address in a single
// transaction. updated_at is always refreshed.
func (r *repository) Update(
	ctx context.Context,
	id int64,
	patch Patch,
) (*User, error) {
	var updated *User

	err := r.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var current userRow
		err := tx.GetContext(ctx, &current,
			`SELECT `+userColumns+` FROM "user" WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		addressID := current.AddressID
		if !patch.Address.IsEmpty() {
			if addressID.Valid {
				err = updateAddress(ctx, tx, addressID.Int64, patch.Address)
				if err != nil {
					return err
				}
			} else {
				newID, err := insertAddress(ctx, tx, patch.Address.toAddress())
				if err != nil {
					return err
				}
				addressID = sql.NullInt64{Int64: newID, Valid: true}
			}
		}

		set := userAssignments(patch)
		if addressID != current.AddressID {
			set.add("address_id", addressID)
		}
		set.add("updated_at", r.now())

		query := fmt.Sprintf(
			`UPDATE "user" SET %s WHERE id = $%d RETURNING %s`,
			set.clause(),
			set.next(),
			userColumns,
		)

		var row userRow
		if err := tx.GetContext(ctx, &row, query, append(set.args, id)...); err != nil {
			return fmt.Errorf("update user row: %w", err)
		}

		addr, err := getAddress(ctx, tx, row.AddressID)
		if err != nil {
			return err
		}

		updated, err = BuildFromRow(row, addr)
		return err
	})
	if err != nil {
		if core.IsUniqueViolation(err) {
			return nil, fmt.Errorf("update user: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return updated, nil
}

func insertAddress(ctx context.Context, db core.DBTX, a *Address) (int64, error) {
	query := `
		INSERT INTO address (street, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := db.GetContext(ctx, &id, query,
		a.Street,
		a.City,
		a.State,
		a.PostalCode,
		a.Country,
	)
	if err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}

	return id, nil
}

func updateAddress(
	ctx context.Context,
	db core.DBTX,
	id int64,
	p *AddressPatch,
) error {
	set := &assignments{}
	set.addIfSet("street", p.Street)
	set.addIfSet("city", p.City)
	set.addIfSet("state", p.State)
	set.addIfSet("postal_code", p.PostalCode)
	set.addIfSet("country", p.Country)

	query := fmt.Sprintf(
		"UPDATE address SET %s WHERE id = $%d",
		set.clause(),
		set.next(),
	)

	if _, err := db.ExecContext(ctx, query, append(set.args, id)...); err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	return nil
}

func getAddress(
	ctx context.Context,
	db core.DBTX,
	id sql.NullInt64,
) (*Address, error) {
	if !id.Valid {
		return nil, nil
	}

	query := `
		SELECT id, street, city, state, postal_code, country
		FROM address
		WHERE id = $1`

	var row addressRow
	err := db.GetContext(ctx, &row, query, id.Int64)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}

	return row.toDomain(), nil
}

func userAssignments(p Patch) *assignments {
	set := &assignments{}
	set.addIfSet("username", p.Username)
	set.addIfSet("email", p.Email)
	set.addIfSet("first_name", p.FirstName)
	set.addIfSet("last_name", p.LastName)
	set.addIfSet("phone_number", p.PhoneNumber)
	if p.Role != nil {
		set.add("role", string(*p.Role))
	}
	if p.Status != nil {
		set.add("status", string(*p.Status))
	}
	return set
}

// assignments accumulates "col = $n" fragments for a dynamic SET clause.
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) add(col string, val any) {
	a.args = append(a.args, val)
	a.cols = append(a.cols, fmt.Sprintf("%s = $%d", col, len(a.args)))
}

func (a *assignments) addIfSet(col string, val *string) {
	if val != nil {
		a.add(col, *val)
	}
}

func (a *assignments) clause() string {
	return strings.Join(a.cols, ", ")
}

func (a *assignments) next() int {
	return len(a.args) + 1
}

func (p *AddressPatch) toAddress() *Address {
	return &Address{
		Street:     p.Street,
		City:       p.City,
		State:      p.State,
		Country:    p.Country,
		PostalCode: p.PostalCode,
	}
}
