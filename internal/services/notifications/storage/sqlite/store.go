// Package sqlite provides SQLite-backed persistence for the notification outbox.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/domain"
	"github.com/wsaeed77/spice-loop/internal/services/notifications/storage/sqlite/migrations"
)

// Store provides SQLite-backed persistence for outbox messages.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ domain.Store         = (*Store)(nil)
	_ domain.DispatchStore = (*Store)(nil)
)

// Open opens the notifications database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	sqlDB, err := sqlitedb.Open(ctx, path, migrations.FS)
	if err != nil {
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
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

const messageColumns = `
	id,
	topic,
	channel,
	recipient,
	subject,
	body,
	dedupe_key,
	status,
	attempt_count,
	next_attempt_at,
	lease_owner,
	lease_expires_at,
	last_error,
	sent_at,
	created_at,
	updated_at`

type scanFunc func(dest ...any) error

func scanMessage(scan scanFunc) (domain.Message, error) {
	var (
		message        domain.Message
		channel        string
		status         string
		nextAttemptAt  int64
		leaseOwner     sql.NullString
		leaseExpiresAt sql.NullInt64
		sentAt         sql.NullInt64
		createdAt      int64
		updatedAt      int64
	)
	if err := scan(
		&message.ID,
		&message.Topic,
		&channel,
		&message.Recipient,
		&message.Subject,
		&message.Body,
		&message.DedupeKey,
		&status,
		&message.AttemptCount,
		&nextAttemptAt,
		&leaseOwner,
		&leaseExpiresAt,
		&message.LastError,
		&sentAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Message{}, err
	}
	message.Channel = domain.Channel(channel)
	message.Status = domain.Status(status)
	message.NextAttemptAt = sqlitedb.FromMillis(nextAttemptAt)
	message.LeaseOwner = leaseOwner.String
	message.LeaseExpiresAt = sqlitedb.FromNullMillis(leaseExpiresAt)
	message.SentAt = sqlitedb.FromNullMillis(sentAt)
	message.CreatedAt = sqlitedb.FromMillis(createdAt)
	message.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return message, nil
}

// InsertMessage stores message unless another row holds its dedupe key.
func (s *Store) InsertMessage(ctx context.Context, message domain.Message) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	if strings.TrimSpace(message.ID) == "" {
		return false, fmt.Errorf("message id is required")
	}
	if strings.TrimSpace(message.DedupeKey) == "" {
		return false, fmt.Errorf("dedupe key is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO notification_outbox (
	id, topic, channel, recipient, subject, body, dedupe_key, status,
	attempt_count, next_attempt_at, last_error, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, '', ?, ?)
ON CONFLICT(dedupe_key) DO NOTHING
`,
		message.ID,
		message.Topic,
		string(message.Channel),
		message.Recipient,
		message.Subject,
		message.Body,
		message.DedupeKey,
		string(domain.StatusPending),
		sqlitedb.ToMillis(message.NextAttemptAt),
		sqlitedb.ToMillis(message.CreatedAt),
		sqlitedb.ToMillis(message.UpdatedAt),
	)
	if err != nil {
		return false, fmt.Errorf("insert outbox message: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert outbox message rows affected: %w", err)
	}
	return n == 1, nil
}

// GetMessage returns one outbox row by ID.
func (s *Store) GetMessage(ctx context.Context, messageID string) (domain.Message, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Message{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT`+messageColumns+` FROM notification_outbox WHERE id = ?`, messageID)
	message, err := scanMessage(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, domain.ErrNotFound
		}
		return domain.Message{}, fmt.Errorf("get outbox message: %w", err)
	}
	return message, nil
}

// ListMessages returns the newest outbox rows first.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT`+messageColumns+`
FROM notification_outbox
ORDER BY created_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list outbox messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.Message, 0, limit)
	for rows.Next() {
		message, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox messages: %w", err)
	}
	return messages, nil
}

// LeaseDueMessages leases due pending rows, and leased rows whose lease
// expired, to owner until now+leaseTTL.
func (s *Store) LeaseDueMessages(ctx context.Context, owner string, limit int, leaseTTL time.Duration, now time.Time) ([]domain.Message, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("lease owner is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	if leaseTTL <= 0 {
		return nil, fmt.Errorf("lease ttl must be greater than zero")
	}
	nowMillis := sqlitedb.ToMillis(now)
	leaseExpiresAt := sqlitedb.ToMillis(now.Add(leaseTTL))

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("start lease transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	candidateIDs, err := leaseCandidates(ctx, tx, nowMillis, limit)
	if err != nil {
		return nil, err
	}

	leased := make([]domain.Message, 0, len(candidateIDs))
	for _, messageID := range candidateIDs {
		result, err := tx.ExecContext(ctx, `
UPDATE notification_outbox
SET
	status = ?,
	lease_owner = ?,
	lease_expires_at = ?,
	updated_at = ?
WHERE id = ?
AND (
	(status = ? AND next_attempt_at <= ?)
	OR
	(status = ? AND lease_expires_at IS NOT NULL AND lease_expires_at <= ?)
)
`,
			string(domain.StatusLeased),
			owner,
			leaseExpiresAt,
			nowMillis,
			messageID,
			string(domain.StatusPending),
			nowMillis,
			string(domain.StatusLeased),
			nowMillis,
		)
		if err != nil {
			return nil, fmt.Errorf("lease outbox message %s: %w", messageID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("lease rows affected for %s: %w", messageID, err)
		}
		if n == 0 {
			continue
		}
		row := tx.QueryRowContext(ctx, `SELECT`+messageColumns+` FROM notification_outbox WHERE id = ?`, messageID)
		message, err := scanMessage(row.Scan)
		if err != nil {
			return nil, fmt.Errorf("load leased message %s: %w", messageID, err)
		}
		leased = append(leased, message)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit lease transaction: %w", err)
	}
	return leased, nil
}

func leaseCandidates(ctx context.Context, tx *sql.Tx, nowMillis int64, limit int) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
SELECT id
FROM notification_outbox
WHERE (
	(status = ? AND next_attempt_at <= ?)
	OR
	(status = ? AND lease_expires_at IS NOT NULL AND lease_expires_at <= ?)
)
ORDER BY next_attempt_at ASC, created_at ASC, id ASC
LIMIT ?
`,
		string(domain.StatusPending),
		nowMillis,
		string(domain.StatusLeased),
		nowMillis,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select lease candidates: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var messageID string
		if err := rows.Scan(&messageID); err != nil {
			return nil, fmt.Errorf("scan lease candidate: %w", err)
		}
		ids = append(ids, messageID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease candidates: %w", err)
	}
	return ids, nil
}

// MarkSent records a delivered message leased by owner.
func (s *Store) MarkSent(ctx context.Context, messageID string, owner string, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE notification_outbox
SET
	status = ?,
	attempt_count = attempt_count + 1,
	lease_owner = NULL,
	lease_expires_at = NULL,
	last_error = '',
	sent_at = ?,
	updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`,
		string(domain.StatusSent),
		sqlitedb.ToMillis(now),
		sqlitedb.ToMillis(now),
		messageID,
		string(domain.StatusLeased),
		owner,
	)
	if err != nil {
		return fmt.Errorf("mark outbox message sent: %w", err)
	}
	return requireLeasedRow(result)
}

// MarkRetry returns a message leased by owner to pending until nextAttemptAt.
func (s *Store) MarkRetry(ctx context.Context, messageID string, owner string, nextAttemptAt time.Time, lastError string, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE notification_outbox
SET
	status = ?,
	attempt_count = attempt_count + 1,
	next_attempt_at = ?,
	lease_owner = NULL,
	lease_expires_at = NULL,
	last_error = ?,
	updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`,
		string(domain.StatusPending),
		sqlitedb.ToMillis(nextAttemptAt),
		lastError,
		sqlitedb.ToMillis(now),
		messageID,
		string(domain.StatusLeased),
		owner,
	)
	if err != nil {
		return fmt.Errorf("mark outbox message retry: %w", err)
	}
	return requireLeasedRow(result)
}

// MarkDead gives up on a message leased by owner.
func (s *Store) MarkDead(ctx context.Context, messageID string, owner string, lastError string, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE notification_outbox
SET
	status = ?,
	attempt_count = attempt_count + 1,
	lease_owner = NULL,
	lease_expires_at = NULL,
	last_error = ?,
	updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`,
		string(domain.StatusDead),
		lastError,
		sqlitedb.ToMillis(now),
		messageID,
		string(domain.StatusLeased),
		owner,
	)
	if err != nil {
		return fmt.Errorf("mark outbox message dead: %w", err)
	}
	return requireLeasedRow(result)
}

func requireLeasedRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("outbox rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
