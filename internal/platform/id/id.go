// Package id generates URL-safe record identifiers.
//
// Identifiers are random UUIDv4 values encoded as lowercase, unpadded
// base32 (RFC 4648), giving 26-character strings that are safe in URLs,
// form values and file names.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new random identifier.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Valid reports whether raw has the shape produced by NewID.
func Valid(raw string) bool {
	if len(raw) != 26 {
		return false
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(raw))
	return err == nil && len(decoded) == 16
}
