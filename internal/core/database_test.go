// AngelaMos | 2026
// database_test.go

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique", fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"plain", errors.New("23505"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckConnectionReportsFailure(t *testing.T) {
	db, err := sqlx.Open("pgx", "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = db.Close()

	got := WrapDB(db).CheckConnection(context.Background())
	if got == StatusConnected {
		t.Fatal("closed pool reported connected")
	}
	if !strings.HasPrefix(got, "Failed to connect to database: ") {
		t.Errorf("CheckConnection() = %q", got)
	}
	if strings.Contains(got, "ping database") {
		t.Errorf("internal wrapping leaked into report: %q", got)
	}
}

func TestDatabaseCloseNilSafe(t *testing.T) {
	var d *Database
	if err := d.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
