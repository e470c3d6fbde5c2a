package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeSelectionWindowClosed, "window closed")
	wrapped := fmt.Errorf("select item: %w", WithMetadata(CodeSelectionWindowClosed, "closed at 23:59", map[string]string{"Cutoff": "23:59"}))

	if !stderrors.Is(wrapped, sentinel) {
		t.Fatal("expected errors.Is to match by code through wrapping")
	}
	if stderrors.Is(wrapped, New(CodeNotFound, "not found")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save order", cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != "" {
		t.Fatalf("CodeOf(nil) = %q, want empty", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, CodeUnknown)
	}
	if got := CodeOf(fmt.Errorf("x: %w", InvalidArgument("phone", "phone is required"))); got != CodeInvalidArgument {
		t.Fatalf("CodeOf(wrapped) = %q, want %q", got, CodeInvalidArgument)
	}
	if got := MetadataOf(InvalidArgument("phone", "phone is required"))["Field"]; got != "phone" {
		t.Fatalf("metadata field = %q, want phone", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: http.StatusOK},
		{err: stderrors.New("boom"), want: http.StatusInternalServerError},
		{err: New(CodeSelectionInvalidDate, "x"), want: http.StatusUnprocessableEntity},
		{err: New(CodeSelectionItemUnavailable, "x"), want: http.StatusUnprocessableEntity},
		{err: New(CodeSelectionWindowClosed, "x"), want: http.StatusConflict},
		{err: New(CodeNotFound, "x"), want: http.StatusNotFound},
		{err: New(CodeInvalidCredentials, "x"), want: http.StatusUnauthorized},
		{err: New(CodePermissionDenied, "x"), want: http.StatusForbidden},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMessageKeyAndUserFacing(t *testing.T) {
	if got := CodeSelectionWindowClosed.MessageKey(); got != "error.selection_window_closed" {
		t.Fatalf("MessageKey() = %q", got)
	}
	if got := Code("").MessageKey(); got != "error.unknown" {
		t.Fatalf("MessageKey(empty) = %q", got)
	}
	if !CodeSelectionInvalidDate.UserFacing() {
		t.Fatal("expected selection errors to be user facing")
	}
	if CodeUnknown.UserFacing() {
		t.Fatal("expected unknown errors not to be user facing")
	}
}
