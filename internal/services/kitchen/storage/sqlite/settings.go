package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
)

const (
	settingRestaurantName = "restaurant_name"
	settingContactPhone   = "contact_phone"
	settingContactEmail   = "contact_email"
	settingDeliveryFee    = "delivery_fee_pence"
	settingSMSEnabled     = "sms_enabled"
	settingEmailEnabled   = "email_enabled"
)

// GetSettings overlays saved keys on the defaults.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Settings{}, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	settings := domain.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Settings{}, fmt.Errorf("scan setting: %w", err)
		}
		if err := applySetting(&settings, key, value); err != nil {
			return domain.Settings{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// PutSettings saves every key in one transaction.
func (s *Store) PutSettings(ctx context.Context, settings domain.Settings) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	values := [][2]string{
		{settingRestaurantName, settings.RestaurantName},
		{settingContactPhone, settings.ContactPhone},
		{settingContactEmail, settings.ContactEmail},
		{settingDeliveryFee, strconv.FormatInt(settings.DeliveryFeePence, 10)},
		{settingSMSEnabled, strconv.FormatBool(settings.SMSEnabled)},
		{settingEmailEnabled, strconv.FormatBool(settings.EmailEnabled)},
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings write: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	for _, kv := range values {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("put setting %s: %w", kv[0], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings write: %w", err)
	}
	return nil
}

func applySetting(settings *domain.Settings, key string, value string) error {
	var err error
	switch key {
	case settingRestaurantName:
		settings.RestaurantName = value
	case settingContactPhone:
		settings.ContactPhone = value
	case settingContactEmail:
		settings.ContactEmail = value
	case settingDeliveryFee:
		settings.DeliveryFeePence, err = strconv.ParseInt(value, 10, 64)
	case settingSMSEnabled:
		settings.SMSEnabled, err = strconv.ParseBool(value)
	case settingEmailEnabled:
		settings.EmailEnabled, err = strconv.ParseBool(value)
	}
	if err != nil {
		return fmt.Errorf("decode setting %s: %w", key, err)
	}
	return nil
}
