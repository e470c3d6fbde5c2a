package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
)

// Acquire takes the named lease for owner until now+ttl. It succeeds when
// the lease is free, expired, or already held by owner.
func (s *Store) Acquire(ctx context.Context, name string, owner string, ttl time.Duration, now time.Time) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO job_leases (name, owner, expires_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
WHERE job_leases.expires_at <= ? OR job_leases.owner = excluded.owner
`, name, owner, sqlitedb.ToMillis(now.Add(ttl)), sqlitedb.ToMillis(now))
	if err != nil {
		return false, fmt.Errorf("acquire lease %s: %w", name, err)
	}
	n, err := rowsAffected("acquire lease", result)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Release drops the named lease when owner holds it.
func (s *Store) Release(ctx context.Context, name string, owner string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM job_leases WHERE name = ? AND owner = ?`, name, owner); err != nil {
		return fmt.Errorf("release lease %s: %w", name, err)
	}
	return nil
}
