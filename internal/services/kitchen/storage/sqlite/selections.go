package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const selectionColumns = `id, user_id, menu_item_id, selection_date, status, created_at, updated_at`

// UpsertSelection writes a choice on the (user, date) key in one statement.
// A repeat choice keeps the row id and creation time, replaces the item and
// resets the status to pending.
func (s *Store) UpsertSelection(ctx context.Context, selection domain.DailySelection) (domain.DailySelection, error) {
	if err := s.ready(ctx); err != nil {
		return domain.DailySelection{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
INSERT INTO daily_selections (`+selectionColumns+`)
VALUES (?, ?, ?, ?, 'pending', ?, ?)
ON CONFLICT(user_id, selection_date) DO UPDATE SET
	menu_item_id = excluded.menu_item_id,
	status = 'pending',
	updated_at = excluded.updated_at
RETURNING `+selectionColumns,
		selection.ID, selection.UserID, selection.MenuItemID, selection.Date.String(),
		sqlitedb.ToMillis(selection.CreatedAt), sqlitedb.ToMillis(selection.UpdatedAt),
	)
	stored, err := scanSelection(row.Scan)
	if err != nil {
		return domain.DailySelection{}, classify("upsert selection", err)
	}
	return stored, nil
}

// GetSelection loads a user's choice for date.
func (s *Store) GetSelection(ctx context.Context, userID string, date domain.Date) (domain.DailySelection, error) {
	if err := s.ready(ctx); err != nil {
		return domain.DailySelection{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT `+selectionColumns+` FROM daily_selections WHERE user_id = ? AND selection_date = ?
`, userID, date.String())
	selection, err := scanSelection(row.Scan)
	if err != nil {
		return domain.DailySelection{}, classify("get selection", err)
	}
	return selection, nil
}

// ListSelections lists a user's choices from the given day onward.
func (s *Store) ListSelections(ctx context.Context, userID string, from domain.Date, limit int) ([]domain.DailySelection, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+selectionColumns+`
FROM daily_selections
WHERE user_id = ? AND selection_date >= ?
ORDER BY selection_date
LIMIT ?`, userID, from.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	var selections []domain.DailySelection
	for rows.Next() {
		selection, err := scanSelection(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list selections: %w", err)
		}
		selections = append(selections, selection)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// ConfirmSelections marks every pending choice for date confirmed.
func (s *Store) ConfirmSelections(ctx context.Context, date domain.Date, now time.Time) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE daily_selections SET status = 'confirmed', updated_at = ?
WHERE selection_date = ? AND status = 'pending'
`, sqlitedb.ToMillis(now), date.String())
	if err != nil {
		return 0, fmt.Errorf("confirm selections: %w", err)
	}
	n, err := rowsAffected("confirm selections", result)
	return int(n), err
}

func scanSelection(scan scanFunc) (domain.DailySelection, error) {
	var (
		selection            domain.DailySelection
		date, status         string
		createdAt, updatedAt int64
	)
	if err := scan(&selection.ID, &selection.UserID, &selection.MenuItemID, &date, &status, &createdAt, &updatedAt); err != nil {
		return domain.DailySelection{}, err
	}
	parsed, err := domain.ParseDate(date)
	if err != nil {
		return domain.DailySelection{}, err
	}
	selection.Date = parsed
	selection.Status = domain.SelectionStatus(status)
	selection.CreatedAt = sqlitedb.FromMillis(createdAt)
	selection.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return selection, nil
}
