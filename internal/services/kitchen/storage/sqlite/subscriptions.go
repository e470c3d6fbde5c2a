package sqlite

import (
	"context"
	"time"

	"github.com/wsaeed77/spice-loop/internal/platform/storage/sqlitedb"
	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

// PutSubscription inserts a subscription. A second active row for the same
// user violates the partial unique index and reports a conflict.
func (s *Store) PutSubscription(ctx context.Context, subscription domain.Subscription) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO subscriptions (id, user_id, plan, status, starts_on, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		subscription.ID, subscription.UserID, string(subscription.Plan), string(subscription.Status),
		subscription.StartsOn.String(), sqlitedb.ToMillis(subscription.CreatedAt), sqlitedb.ToMillis(subscription.UpdatedAt),
	)
	return classify("put subscription", err)
}

// GetActiveSubscription loads the user's active subscription.
func (s *Store) GetActiveSubscription(ctx context.Context, userID string) (domain.Subscription, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Subscription{}, err
	}
	var (
		subscription         domain.Subscription
		plan, status, starts string
		createdAt, updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, user_id, plan, status, starts_on, created_at, updated_at
FROM subscriptions
WHERE user_id = ? AND status = 'active'
`, userID).Scan(&subscription.ID, &subscription.UserID, &plan, &status, &starts, &createdAt, &updatedAt)
	if err != nil {
		return domain.Subscription{}, classify("get active subscription", err)
	}
	startsOn, err := domain.ParseDate(starts)
	if err != nil {
		return domain.Subscription{}, err
	}
	subscription.Plan = domain.Plan(plan)
	subscription.Status = domain.SubscriptionStatus(status)
	subscription.StartsOn = startsOn
	subscription.CreatedAt = sqlitedb.FromMillis(createdAt)
	subscription.UpdatedAt = sqlitedb.FromMillis(updatedAt)
	return subscription, nil
}

// CancelActiveSubscription cancels the user's active subscription and
// reports whether one existed.
func (s *Store) CancelActiveSubscription(ctx context.Context, userID string, now time.Time) (bool, error) {
	if err := s.ready(ctx); err != nil {
		return false, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE subscriptions SET status = 'cancelled', updated_at = ? WHERE user_id = ? AND status = 'active'
`, sqlitedb.ToMillis(now), userID)
	if err != nil {
		return false, classify("cancel subscription", err)
	}
	n, err := rowsAffected("cancel subscription", result)
	return n > 0, err
}
