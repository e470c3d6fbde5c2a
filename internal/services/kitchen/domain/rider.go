package domain

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

// Rider delivers orders.
type Rider struct {
	ID        string
	Name      string
	Phone     string
	Active    bool
	CreatedAt time.Time
}

// RiderReader loads riders by id.
type RiderReader interface {
	GetRider(ctx context.Context, riderID string) (Rider, error)
}

// RiderStore persists riders.
type RiderStore interface {
	RiderReader
	PutRider(ctx context.Context, rider Rider) error
	ListRiders(ctx context.Context, activeOnly bool) ([]Rider, error)
	SetRiderActive(ctx context.Context, riderID string, active bool) error
}

// Riders manages the delivery team.
type Riders struct {
	store RiderStore
	clock func() time.Time
	newID func() (string, error)
}

// NewRiders constructs rider use-cases.
func NewRiders(store RiderStore, clock func() time.Time, newID func() (string, error)) *Riders {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Riders{store: store, clock: clock, newID: newID}
}

// CreateRider adds an active rider.
func (r *Riders) CreateRider(ctx context.Context, name string, phone string) (Rider, error) {
	rider := Rider{Name: strings.TrimSpace(name), Phone: strings.TrimSpace(phone), Active: true}
	if rider.Name == "" {
		return Rider{}, apperrors.InvalidArgument("name", "name is required")
	}
	if rider.Phone == "" {
		return Rider{}, apperrors.InvalidArgument("phone", "phone is required")
	}
	var err error
	rider.ID, err = r.newID()
	if err != nil {
		return Rider{}, err
	}
	rider.CreatedAt = r.clock().UTC()
	if err := r.store.PutRider(ctx, rider); err != nil {
		return Rider{}, err
	}
	return rider, nil
}

// ListRiders lists riders by name.
func (r *Riders) ListRiders(ctx context.Context, activeOnly bool) ([]Rider, error) {
	return r.store.ListRiders(ctx, activeOnly)
}

// SetRiderActive takes a rider on or off the roster.
func (r *Riders) SetRiderActive(ctx context.Context, riderID string, active bool) error {
	return r.store.SetRiderActive(ctx, strings.TrimSpace(riderID), active)
}
