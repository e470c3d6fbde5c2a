package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const orderColumns = `id, user_id, customer_name, email, phone, address, delivery_fee_pence, total_pence, status, delivery_date, delivery_time, notes, rider_id, created_at, updated_at`

// PutOrder inserts an order and its lines in one transaction.
func (s *Store) PutOrder(ctx context.Context, order domain.Order) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order write: %w", err)
	}
	rollbackWith := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%w: rollback order write: %v", cause, rollbackErr)
		}
		return cause
	}

	var deliveryTime sql.NullString
	if order.DeliveryTime != nil {
		deliveryTime = sql.NullString{String: order.DeliveryTime.String(), Valid: true}
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (`+orderColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		order.ID, nullString(order.UserID), order.CustomerName, order.Email, order.Phone, order.Address,
		order.DeliveryFeePence, order.TotalPence, string(order.Status), nullDate(order.DeliveryDate), deliveryTime,
		order.Notes, nullString(order.RiderID), sqlitedb.ToMillis(order.CreatedAt), sqlitedb.ToMillis(order.UpdatedAt),
	); err != nil {
		return rollbackWith(classify("put order", err))
	}
	if err := putOrderLines(ctx, tx, order.ID, order.Lines); err != nil {
		return rollbackWith(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order write: %w", err)
	}
	return nil
}

func putOrderLines(ctx context.Context, db execer, orderID string, lines []domain.OrderLine) error {
	for i, line := range lines {
		if _, err := db.ExecContext(ctx, `
INSERT INTO order_lines (order_id, position, menu_item_id, name, unit_pence, quantity)
VALUES (?, ?, ?, ?, ?, ?)
`, orderID, i, line.MenuItemID, line.Name, line.UnitPence, line.Quantity); err != nil {
			return classify("put order line", err)
		}
	}
	return nil
}

// GetOrder loads one order with its lines.
func (s *Store) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Order{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row.Scan)
	if err != nil {
		return domain.Order{}, classify("get order", err)
	}
	orders := []domain.Order{order}
	if err := s.attachLines(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

// ListOrders lists orders newest first, narrowed by the query condition.
func (s *Store) ListOrders(ctx context.Context, query domain.OrderQuery) ([]domain.Order, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	statement := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, len(query.Condition.Params)+1)
	if !query.Condition.Empty() {
		statement += ` WHERE ` + query.Condition.Clause
		args = append(args, query.Condition.Params...)
	}
	statement += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, query.Limit)
	return s.queryOrders(ctx, "list orders", statement, args...)
}

// ListScheduledPendingOrders lists pending orders that have both a delivery
// date and a delivery time.
func (s *Store) ListScheduledPendingOrders(ctx context.Context) ([]domain.Order, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryOrders(ctx, "list scheduled pending orders", `
SELECT `+orderColumns+`
FROM orders
WHERE status = 'pending' AND delivery_date IS NOT NULL AND delivery_time IS NOT NULL
ORDER BY delivery_date, delivery_time, id`)
}

// TransitionOrderStatus sets to on orderID only while its status is still
// from, and reports whether the row changed.
func (s *Store) TransitionOrderStatus(ctx context.Context, orderID string, from domain.OrderStatus, to domain.OrderStatus, now time.Time) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?
`, string(to), sqlitedb.ToMillis(now), orderID, string(from))
	if err != nil {
		return false, fmt.Errorf("transition order status: %w", err)
	}
	n, err := rowsAffected("transition order status", result)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SetOrderRider assigns a rider to an order.
func (s *Store) SetOrderRider(ctx context.Context, orderID string, riderID string, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE orders SET rider_id = ?, updated_at = ? WHERE id = ?
`, nullString(riderID), sqlitedb.ToMillis(now), orderID)
	if err != nil {
		return classify("set order rider", err)
	}
	return requireOne("set order rider", result)
}

func (s *Store) queryOrders(ctx context.Context, op string, query string, args ...any) ([]domain.Order, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) attachLines(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	index := make(map[string]int, len(orders))
	args := make([]any, 0, len(orders))
	for i, order := range orders {
		index[order.ID] = i
		args = append(args, order.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(orders)), ",")
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT order_id, menu_item_id, name, unit_pence, quantity
FROM order_lines
WHERE order_id IN (`+placeholders+`)
ORDER BY order_id, position`, args...)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			line    domain.OrderLine
		)
		if err := rows.Scan(&orderID, &line.MenuItemID, &line.Name, &line.UnitPence, &line.Quantity); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	return nil
}

func scanOrder(scan scanFunc) (domain.Order, error) {
	var (
		order                    domain.Order
		userID, riderID          sql.NullString
		status                   string
		deliveryDate, deliveryAt sql.NullString
		createdAt, updatedAt     int64
	)
	if err := scan(
		&order.ID, &userID, &order.CustomerName, &order.Email, &order.Phone, &order.Address,
		&order.DeliveryFeePence, &order.TotalPence, &status, &deliveryDate, &deliveryAt,
		&order.Notes, &riderID, &createdAt, &updatedAt,
	); err != nil {
		return domain.Order{}, err
	}
	order.UserID = userID.String
	order.RiderID = riderID.String
	order.Status = domain.OrderStatus(status)
	date, err := optionalDate(deliveryDate)
	if err != nil {
		return domain.Order{}, err
	}
	order.DeliveryDate = date
	if deliveryAt.Valid && deliveryAt.String != "" {
		clock, err := domain.ParseTimeOfDay(deliveryAt.String)
		if err != nil {
			return domain.Order{}, err
		}
		order.DeliveryTime = &clock
	}
	order.CreatedAt = sqlitedb.FromMillis(createdAt)
	order.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return order, nil
}
