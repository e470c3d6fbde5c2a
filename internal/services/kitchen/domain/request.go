package domain

import (
	"context"
	"log"
	"strings"
	"time"

	apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"
	"github.com/wsaeed77/spice-loop/internal/platform/id"
)

const minCateringGuests = 10

// RequestKind distinguishes catering from special orders.
type RequestKind string

const (
	RequestCatering     RequestKind = "catering"
	RequestSpecialOrder RequestKind = "special_order"
)

// ParseRequestKind normalizes a kind token. Empty means any kind.
func ParseRequestKind(raw string) (RequestKind, bool) {
	switch kind := RequestKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case RequestCatering, RequestSpecialOrder, "":
		return kind, true
	default:
		return "", false
	}
}

// RequestStatus tracks the back-office handling of a request.
type RequestStatus string

const (
	RequestNew       RequestStatus = "new"
	RequestQuoted    RequestStatus = "quoted"
	RequestConfirmed RequestStatus = "confirmed"
	RequestDeclined  RequestStatus = "declined"
)

// RequestStatuses lists request statuses in workflow order.
var RequestStatuses = []RequestStatus{RequestNew, RequestQuoted, RequestConfirmed, RequestDeclined}

// ServiceRequest is a catering or special-order enquiry.
type ServiceRequest struct {
	ID        string
	Kind      RequestKind
	Name      string
	Email     string
	Phone     string
	EventDate *Date
	Guests    int
	Details   string
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequestInput carries a catering or special-order form.
type RequestInput struct {
	Name      string
	Email     string
	Phone     string
	EventDate string
	Guests    int
	Details   string
}

// RequestStore persists service requests.
type RequestStore interface {
	PutRequest(ctx context.Context, request ServiceRequest) error
	GetRequest(ctx context.Context, requestID string) (ServiceRequest, error)
	ListRequests(ctx context.Context, kind RequestKind) ([]ServiceRequest, error)
	SetRequestStatus(ctx context.Context, requestID string, status RequestStatus, now time.Time) error
}

// Requests records catering and special-order enquiries.
type Requests struct {
	calendar Calendar
	store    RequestStore
	notifier Notifier
	clock    func() time.Time
	newID    func() (string, error)
}

// NewRequests constructs enquiry use-cases. notifier may be nil.
func NewRequests(calendar Calendar, store RequestStore, notifier Notifier, clock func() time.Time, newID func() (string, error)) *Requests {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Requests{calendar: calendar, store: store, notifier: notifier, clock: clock, newID: newID}
}

// SubmitCatering records a catering enquiry for ten or more guests.
func (r *Requests) SubmitCatering(ctx context.Context, input RequestInput) (ServiceRequest, error) {
	request, err := r.base(RequestCatering, input)
	if err != nil {
		return ServiceRequest{}, err
	}
	if request.EventDate == nil {
		return ServiceRequest{}, apperrors.InvalidArgument("event_date", "event date is required")
	}
	if input.Guests < minCateringGuests {
		return ServiceRequest{}, apperrors.InvalidArgument("guests", "catering starts at 10 guests")
	}
	request.Guests = input.Guests
	return r.submit(ctx, request)
}

// SubmitSpecialOrder records a special-order enquiry.
func (r *Requests) SubmitSpecialOrder(ctx context.Context, input RequestInput) (ServiceRequest, error) {
	request, err := r.base(RequestSpecialOrder, input)
	if err != nil {
		return ServiceRequest{}, err
	}
	if request.Details == "" {
		return ServiceRequest{}, apperrors.InvalidArgument("details", "details are required")
	}
	return r.submit(ctx, request)
}

func (r *Requests) base(kind RequestKind, input RequestInput) (ServiceRequest, error) {
	request := ServiceRequest{
		Kind:    kind,
		Name:    strings.TrimSpace(input.Name),
		Email:   normalizeEmail(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Details: strings.TrimSpace(input.Details),
		Status:  RequestNew,
	}
	switch {
	case request.Name == "":
		return ServiceRequest{}, apperrors.InvalidArgument("name", "name is required")
	case request.Phone == "":
		return ServiceRequest{}, apperrors.InvalidArgument("phone", "phone is required")
	}
	if raw := strings.TrimSpace(input.EventDate); raw != "" {
		date, err := ParseDate(raw)
		if err != nil {
			return ServiceRequest{}, apperrors.InvalidArgument("event_date", "event date must be YYYY-MM-DD")
		}
		if !r.calendar.Today(r.clock()).Before(date) {
			return ServiceRequest{}, apperrors.InvalidArgument("event_date", "event date must be in the future")
		}
		request.EventDate = &date
	}
	return request, nil
}

func (r *Requests) submit(ctx context.Context, request ServiceRequest) (ServiceRequest, error) {
	var err error
	request.ID, err = r.newID()
	if err != nil {
		return ServiceRequest{}, err
	}
	request.CreatedAt = r.clock().UTC()
	request.UpdatedAt = request.CreatedAt
	if err := r.store.PutRequest(ctx, request); err != nil {
		return ServiceRequest{}, err
	}
	if r.notifier != nil {
		if err := r.notifier.RequestSubmitted(ctx, request); err != nil {
			log.Printf("notify request submitted %s: %v", request.ID, err)
		}
	}
	return request, nil
}

// ListRequests lists enquiries newest first. An empty kind lists all.
func (r *Requests) ListRequests(ctx context.Context, rawKind string) ([]ServiceRequest, error) {
	kind, ok := ParseRequestKind(rawKind)
	if !ok {
		return nil, apperrors.InvalidArgument("kind", "unknown request kind")
	}
	return r.store.ListRequests(ctx, kind)
}

// UpdateRequestStatus records the back-office outcome of an enquiry.
func (r *Requests) UpdateRequestStatus(ctx context.Context, requestID string, rawStatus string) (ServiceRequest, error) {
	status := RequestStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	known := false
	for _, candidate := range RequestStatuses {
		if candidate == status {
			known = true
			break
		}
	}
	if !known {
		return ServiceRequest{}, apperrors.InvalidArgument("status", "unknown request status")
	}
	request, err := r.store.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		return ServiceRequest{}, err
	}
	now := r.clock().UTC()
	if err := r.store.SetRequestStatus(ctx, request.ID, status, now); err != nil {
		return ServiceRequest{}, err
	}
	request.Status = status
	request.UpdatedAt = now
	return request, nil
}
