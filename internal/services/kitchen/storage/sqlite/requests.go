package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const requestColumns = `id, kind, name, email, phone, event_date, guests, details, status, created_at, updated_at`

// PutRequest inserts a service request.
func (s *Store) PutRequest(ctx context.Context, request domain.ServiceRequest) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO service_requests (`+requestColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		request.ID, string(request.Kind), request.Name, request.Email, request.Phone, nullDate(request.EventDate),
		request.Guests, request.Details, string(request.Status), sqlitedb.ToMillis(request.CreatedAt), sqlitedb.ToMillis(request.UpdatedAt),
	)
	return classify("put request", err)
}

// GetRequest loads one service request.
func (s *Store) GetRequest(ctx context.Context, requestID string) (domain.ServiceRequest, error) {
	if err := s.ready(ctx); err != nil {
		return domain.ServiceRequest{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE id = ?`, requestID)
	request, err := scanRequest(row.Scan)
	if err != nil {
		return domain.ServiceRequest{}, classify("get request", err)
	}
	return request, nil
}

// ListRequests lists requests newest first. An empty kind lists all kinds.
func (s *Store) ListRequests(ctx context.Context, kind domain.RequestKind) ([]domain.ServiceRequest, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `SELECT ` + requestColumns + ` FROM service_requests`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	rows, err := s.sqlDB.QueryContext(ctx, query+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ServiceRequest
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// SetRequestStatus records a request's handling outcome.
func (s *Store) SetRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE service_requests SET status = ?, updated_at = ? WHERE id = ?
`, string(status), sqlitedb.ToMillis(now), requestID)
	if err != nil {
		return classify("set request status", err)
	}
	return requireOne("set request status", result)
}

func scanRequest(scan scanFunc) (domain.ServiceRequest, error) {
	var (
		request              domain.ServiceRequest
		kind, status         string
		eventDate            sql.NullString
		createdAt, updatedAt int64
	)
	if err := scan(
		&request.ID, &kind, &request.Name, &request.Email, &request.Phone, &eventDate,
		&request.Guests, &request.Details, &status, &createdAt, &updatedAt,
	); err != nil {
		return domain.ServiceRequest{}, err
	}
	date, err := optionalDate(eventDate)
	if err != nil {
		return domain.ServiceRequest{}, err
	}
	request.Kind = domain.RequestKind(kind)
	request.Status = domain.RequestStatus(status)
	request.EventDate = date
	request.CreatedAt = sqlitedb.FromMillis(createdAt)
	request.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return request, nil
}
