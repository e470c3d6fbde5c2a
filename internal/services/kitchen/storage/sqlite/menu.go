package sqlite

import (
	"context"
	"fmt"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const menuItemColumns = `id, name, description, category, price_pence, image_url, available, created_at, updated_at`

const menuItemOrder = `
ORDER BY CASE category
	WHEN 'starter' THEN 1 WHEN 'main' THEN 2 WHEN 'side' THEN 3
	WHEN 'dessert' THEN 4 WHEN 'drink' THEN 5 ELSE 6 END, name, id`

// PutMenuItem inserts or replaces a menu item.
func (s *Store) PutMenuItem(ctx context.Context, item domain.MenuItem) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO menu_items (`+menuItemColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	description = excluded.description,
	category = excluded.category,
	price_pence = excluded.price_pence,
	image_url = excluded.image_url,
	available = excluded.available,
	updated_at = excluded.updated_at
`,
		item.ID, item.Name, item.Description, string(item.Category), item.PricePence, item.ImageURL,
		boolInt(item.Available), sqlitedb.ToMillis(item.CreatedAt), sqlitedb.ToMillis(item.UpdatedAt),
	)
	return classify("put menu item", err)
}

// GetMenuItem loads one menu item.
func (s *Store) GetMenuItem(ctx context.Context, itemID string) (domain.MenuItem, error) {
	if err := s.ready(ctx); err != nil {
		return domain.MenuItem{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = ?`, itemID)
	item, err := scanMenuItem(row.Scan)
	if err != nil {
		return domain.MenuItem{}, classify("get menu item", err)
	}
	return item, nil
}

// ListMenuItems lists menu items by category then name.
func (s *Store) ListMenuItems(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	if availableOnly {
		query += ` WHERE available = 1`
	}
	return s.queryMenuItems(ctx, "list menu items", query+menuItemOrder)
}

// ListDayMenu lists items offered and available on day.
func (s *Store) ListDayMenu(ctx context.Context, day domain.Weekday) ([]domain.MenuItem, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `
SELECT m.id, m.name, m.description, m.category, m.price_pence, m.image_url, m.available, m.created_at, m.updated_at
FROM menu_items m
JOIN weekly_menu_options o ON o.menu_item_id = m.id
WHERE o.day = ? AND o.available = 1
ORDER BY m.name, m.id`
	return s.queryMenuItems(ctx, "list day menu", query, string(day))
}

func (s *Store) queryMenuItems(ctx context.Context, op string, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// PutWeeklyOption upserts on (item, day) and returns the stored option.
func (s *Store) PutWeeklyOption(ctx context.Context, option domain.WeeklyMenuOption) (domain.WeeklyMenuOption, error) {
	if err := s.ready(ctx); err != nil {
		return domain.WeeklyMenuOption{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
INSERT INTO weekly_menu_options (id, menu_item_id, day, available)
VALUES (?, ?, ?, ?)
ON CONFLICT(menu_item_id, day) DO UPDATE SET available = excluded.available
RETURNING id, menu_item_id, day, available
`, option.ID, option.MenuItemID, string(option.Day), boolInt(option.Available))
	stored, err := scanWeeklyOption(row.Scan)
	if err != nil {
		return domain.WeeklyMenuOption{}, classify("put weekly option", err)
	}
	return stored, nil
}

// GetWeeklyOption loads the option for item on day.
func (s *Store) GetWeeklyOption(ctx context.Context, itemID string, day domain.Weekday) (domain.WeeklyMenuOption, error) {
	if err := s.ready(ctx); err != nil {
		return domain.WeeklyMenuOption{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, menu_item_id, day, available FROM weekly_menu_options WHERE menu_item_id = ? AND day = ?
`, itemID, string(day))
	option, err := scanWeeklyOption(row.Scan)
	if err != nil {
		return domain.WeeklyMenuOption{}, classify("get weekly option", err)
	}
	return option, nil
}

// DeleteWeeklyOption removes the option for item on day.
func (s *Store) DeleteWeeklyOption(ctx context.Context, itemID string, day domain.Weekday) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM weekly_menu_options WHERE menu_item_id = ? AND day = ?`, itemID, string(day))
	if err != nil {
		return classify("delete weekly option", err)
	}
	return requireOne("delete weekly option", result)
}

// ListWeeklyOptions lists every weekly option.
func (s *Store) ListWeeklyOptions(ctx context.Context) ([]domain.WeeklyMenuOption, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT o.id, o.menu_item_id, o.day, o.available
FROM weekly_menu_options o
JOIN menu_items m ON m.id = o.menu_item_id
ORDER BY m.name, o.id`)
	if err != nil {
		return nil, fmt.Errorf("list weekly options: %w", err)
	}
	defer rows.Close()

	var options []domain.WeeklyMenuOption
	for rows.Next() {
		option, err := scanWeeklyOption(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list weekly options: %w", err)
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list weekly options: %w", err)
	}
	return options, nil
}

func scanMenuItem(scan scanFunc) (domain.MenuItem, error) {
	var (
		item                 domain.MenuItem
		category             string
		available            int
		createdAt, updatedAt int64
	)
	if err := scan(&item.ID, &item.Name, &item.Description, &category, &item.PricePence, &item.ImageURL, &available, &createdAt, &updatedAt); err != nil {
		return domain.MenuItem{}, err
	}
	item.Category = domain.Category(category)
	item.Available = available == 1
	item.CreatedAt = sqlitedb.FromMillis(createdAt)
	item.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return item, nil
}

func scanWeeklyOption(scan scanFunc) (domain.WeeklyMenuOption, error) {
	var (
		option    domain.WeeklyMenuOption
		day       string
		available int
	)
	if err := scan(&option.ID, &option.MenuItemID, &day, &available); err != nil {
		return domain.WeeklyMenuOption{}, err
	}
	option.Day = domain.Weekday(day)
	option.Available = available == 1
	return option, nil
}
