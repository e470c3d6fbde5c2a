// Package sqlite provides SQLite-backed persistence for the kitchen.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/storage/sqlite/migrations"
)

// Store implements every kitchen domain store over one SQLite database.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ domain.UserStore         = (*Store)(nil)
	_ domain.MenuStore         = (*Store)(nil)
	_ domain.SelectionStore    = (*Store)(nil)
	_ domain.OrderStore        = (*Store)(nil)
	_ domain.RiderStore        = (*Store)(nil)
	_ domain.SubscriptionStore = (*Store)(nil)
	_ domain.RequestStore      = (*Store)(nil)
	_ domain.SettingsStore     = (*Store)(nil)
	_ domain.Locker            = (*Store)(nil)
)

// Open opens the kitchen database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := sqlitedb.Open(ctx, path, migrations.FS)
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type scanFunc func(dest ...any) error

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// classify maps driver failures onto domain errors.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case sqlitedb.IsForeignKeyError(err):
		return domain.ErrNotFound
	case sqlitedb.IsConstraintError(err):
		return domain.ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func rowsAffected(op string, result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n, nil
}

func requireOne(op string, result sql.Result) error {
	n, err := rowsAffected(op, result)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func boolInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullDate(value *domain.Date) sql.NullString {
	if value == nil || value.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: value.String(), Valid: true}
}

func optionalDate(value sql.NullString) (*domain.Date, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(value.String)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
