package domain

import (
	"context"
	"strings"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
)

// Settings are restaurant-wide options edited in the back office.
type Settings struct {
	RestaurantName   string
	ContactPhone     string
	ContactEmail     string
	DeliveryFeePence int64
	SMSEnabled       bool
	EmailEnabled     bool
}

// DefaultSettings are used for keys that were never saved.
func DefaultSettings() Settings {
	return Settings{
		RestaurantName:   "Spice Loop",
		DeliveryFeePence: 250,
		SMSEnabled:       true,
		EmailEnabled:     true,
	}
}

// SettingsReader loads the current settings.
type SettingsReader interface {
	GetSettings(ctx context.Context) (Settings, error)
}

// SettingsStore persists settings.
type SettingsStore interface {
	SettingsReader
	PutSettings(ctx context.Context, settings Settings) error
}

// SettingsService reads and edits restaurant settings.
type SettingsService struct {
	store SettingsStore
}

// NewSettingsService constructs settings use-cases.
func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings loads the current settings.
func (s *SettingsService) GetSettings(ctx context.Context) (Settings, error) {
	return s.store.GetSettings(ctx)
}

// UpdateSettings validates and saves settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) (Settings, error) {
	settings.RestaurantName = strings.TrimSpace(settings.RestaurantName)
	settings.ContactPhone = strings.TrimSpace(settings.ContactPhone)
	settings.ContactEmail = normalizeEmail(settings.ContactEmail)
	if settings.RestaurantName == "" {
		return Settings{}, apperrors.InvalidArgument("restaurant_name", "restaurant name is required")
	}
	if settings.DeliveryFeePence < 0 {
		return Settings{}, apperrors.InvalidArgument("delivery_fee", "delivery fee cannot be negative")
	}
	if err := s.store.PutSettings(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
