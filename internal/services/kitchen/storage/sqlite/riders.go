package sqlite

import (
	"context"
	"fmt"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

// PutRider inserts a rider.
func (s *Store) PutRider(ctx context.Context, rider domain.Rider) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO riders (id, name, phone, active, created_at) VALUES (?, ?, ?, ?, ?)
`, rider.ID, rider.Name, rider.Phone, boolInt(rider.Active), sqlitedb.ToMillis(rider.CreatedAt))
	return classify("put rider", err)
}

// GetRider loads one rider.
func (s *Store) GetRider(ctx context.Context, riderID string) (domain.Rider, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Rider{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name, phone, active, created_at FROM riders WHERE id = ?`, riderID)
	rider, err := scanRider(row.Scan)
	if err != nil {
		return domain.Rider{}, classify("get rider", err)
	}
	return rider, nil
}

// ListRiders lists riders by name.
func (s *Store) ListRiders(ctx context.Context, activeOnly bool) ([]domain.Rider, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `SELECT id, name, phone, active, created_at FROM riders`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	rows, err := s.sqlDB.QueryContext(ctx, query+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	defer rows.Close()

	var riders []domain.Rider
	for rows.Next() {
		rider, err := scanRider(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list riders: %w", err)
		}
		riders = append(riders, rider)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	return riders, nil
}

// SetRiderActive toggles a rider's availability.
func (s *Store) SetRiderActive(ctx context.Context, riderID string, active bool) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE riders SET active = ? WHERE id = ?`, boolInt(active), riderID)
	if err != nil {
		return classify("set rider active", err)
	}
	return requireOne("set rider active", result)
}

func scanRider(scan scanFunc) (domain.Rider, error) {
	var (
		rider     domain.Rider
		active    int
		createdAt int64
	)
	if err := scan(&rider.ID, &rider.Name, &rider.Phone, &active, &createdAt); err != nil {
		return domain.Rider{}, err
	}
	rider.Active = active == 1
	rider.CreatedAt = sqlitedb.FromMillis(createdAt)
	return rider, nil
}
