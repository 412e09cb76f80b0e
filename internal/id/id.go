package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh random transaction ID.
func New() string {
	return uuid.NewString()
}

// FormatMonthKey returns a month key like "2025-01".
func FormatMonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ParseMonthKey parses "2025-01" into year and month.
func ParseMonthKey(key string) (year, month int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid month key format: %q", key)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in month key %q: %w", key, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in month key %q: %w", key, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in month key %q", key)
	}

	return year, month, nil
}

// HasPrefix reports whether prefix identifies id. Hyphens are ignored so
// users can type the first hex digits.
func HasPrefix(id, prefix string) bool {
	if prefix == "" {
		return false
	}
	clean := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, "-", "")) }
	return strings.HasPrefix(clean(id), clean(prefix))
}

// FromReference returns a stable ID for an external reference, so the same
// bank row imported twice maps to the same transaction.
func FromReference(ref string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("neospend:"+ref)).String()
}
