package domain

import apperrors "github.com/wsaeed77/spice-loop/internal/platform/errors"

var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrConflict indicates a write violated a uniqueness rule.
	ErrConflict = apperrors.New(apperrors.CodeConflict, "record conflict")
	// ErrInvalidDate indicates the selection date is not tomorrow.
	ErrInvalidDate = apperrors.New(apperrors.CodeSelectionInvalidDate, "selection date must be the next calendar day")
	// ErrWindowClosed indicates the daily selection cutoff has passed.
	ErrWindowClosed = apperrors.New(apperrors.CodeSelectionWindowClosed, "selection window is closed")
	// ErrItemUnavailableForDay indicates the item is not on that weekday's menu.
	ErrItemUnavailableForDay = apperrors.New(apperrors.CodeSelectionItemUnavailable, "menu item is not available for that day")
	// ErrInvalidStatusTransition indicates a disallowed order status change.
	ErrInvalidStatusTransition = apperrors.New(apperrors.CodeOrderInvalidStatusTransition, "order status transition is not allowed")
	// ErrSweepInProgress indicates another worker holds the sweep lease.
	ErrSweepInProgress = apperrors.New(apperrors.CodeSweepInProgress, "order sweep already in progress")
	// ErrInvalidCredentials indicates a failed sign-in.
	ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid email or password")
	// ErrSubscriptionRequired indicates the user has no active subscription.
	ErrSubscriptionRequired = apperrors.New(apperrors.CodeSubscriptionRequired, "active subscription required")
)

func notFound(what string, err error) error {
	return apperrors.Wrap(apperrors.CodeNotFound, what+" not found", err)
}

func isNotFound(err error) bool {
	return apperrors.CodeOf(err) == apperrors.CodeNotFound
}
