// Package errors provides coded application errors shared by every service.
package errors

import (
	"net/http"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified failure.
	CodeUnknown Code = "UNKNOWN"

	// Generic validation and storage outcomes
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"

	// Meal selection
	CodeSelectionInvalidDate     Code = "SELECTION_INVALID_DATE"
	CodeSelectionWindowClosed    Code = "SELECTION_WINDOW_CLOSED"
	CodeSelectionItemUnavailable Code = "SELECTION_ITEM_UNAVAILABLE_FOR_DAY"

	// Orders
	CodeOrderInvalidStatusTransition Code = "ORDER_INVALID_STATUS_TRANSITION"
	CodeSweepInProgress              Code = "SWEEP_IN_PROGRESS"

	// Accounts and access
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodePermissionDenied     Code = "PERMISSION_DENIED"
	CodeSubscriptionRequired Code = "SUBSCRIPTION_REQUIRED"
)

// HTTPStatus maps a code to the status a page handler responds with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument,
		CodeSelectionInvalidDate,
		CodeSelectionItemUnavailable:
		return http.StatusUnprocessableEntity
	case CodeSelectionWindowClosed,
		CodeOrderInvalidStatusTransition,
		CodeConflict,
		CodeSweepInProgress:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials, CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied, CodeSubscriptionRequired:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey returns the localization key for the user-facing copy of c.
func (c Code) MessageKey() string {
	if c == "" {
		c = CodeUnknown
	}
	return "error." + strings.ToLower(string(c))
}

// UserFacing reports whether the code describes a validation-style failure
// that should be shown to the end user instead of a generic error page.
func (c Code) UserFacing() bool {
	status := c.HTTPStatus()
	return status >= 400 && status < 500
}
