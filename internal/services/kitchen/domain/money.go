package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPence renders an amount in pence as pounds, e.g. 1250 as "£12.50".
func FormatPence(pence int64) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s£%d.%02d", sign, pence/100, pence%100)
}

// ShortRef is the customer-facing reference for a record id.
func ShortRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// ParsePounds reads a pounds amount such as "12.50", "£4" or "0.5" into pence.
func ParsePounds(raw string) (int64, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "£")
	if raw == "" {
		return 0, fmt.Errorf("amount is required")
	}
	whole, fraction, hasFraction := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	pounds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || pounds < 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	var pence int64
	if hasFraction {
		if len(fraction) == 0 || len(fraction) > 2 {
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
		if len(fraction) == 1 {
			fraction += "0"
		}
		pence, err = strconv.ParseInt(fraction, 10, 64)
		if err != nil || pence < 0 {
			return 0, fmt.Errorf("invalid amount %q", raw)
		}
	}
	return pounds*100 + pence, nil
}
