// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/user-registry/internal/config"
)

// StatusConnected is the connection report for a reachable database.
// Anything else is a failure description.
const StatusConnected = "Connected"

const (
	pingTimeout        = 5 * time.Second
	uniqueViolationSQL = "23505"
)

// Database owns the PostgreSQL pool shared by every repository.
type Database struct {
	DB *sqlx.DB
}

func NewDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
) (*Database, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := WrapDB(db)
	d.configurePool(cfg)

	if err := d.Ping(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return d, nil
}

// WrapDB adopts an already opened pool.
func WrapDB(db *sqlx.DB) *Database {
	return &Database{DB: db}
}

func (d *Database) configurePool(cfg config.DatabaseConfig) {
	d.DB.SetMaxOpenConns(cfg.MaxOpenConns)
	d.DB.SetMaxIdleConns(cfg.MaxIdleConns)
	d.DB.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))
	d.DB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var one int
	if err := d.DB.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// CheckConnection never fails. It reports StatusConnected or
// "Failed to connect to database: <cause>".
func (d *Database) CheckConnection(ctx context.Context) string {
	if err := d.Ping(ctx); err != nil {
		return fmt.Sprintf("Failed to connect to database: %v", errors.Unwrap(err))
	}
	return StatusConnected
}

func (d *Database) Stats() sql.DBStats {
	return d.DB.Stats()
}

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// InTx runs fn in a transaction, committing on nil and rolling back
// otherwise. Rows written by fn land together or not at all.
func (d *Database) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // best-effort rollback on panic
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback: %w (cause: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err carries a PostgreSQL unique
// constraint failure anywhere in its chain.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQL
}

// jitteredDuration spreads connection recycling over base..base+base/7 so
// pooled connections do not expire in lockstep.
func jitteredDuration(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: non-security-sensitive jitter for connection pool
	return base + time.Duration(rand.Int64N(int64(base/7)+1))
}
