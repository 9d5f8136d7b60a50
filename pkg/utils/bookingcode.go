package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BookingCodePrefix resolves the human-readable prefix for a booking code.
// Precedence: city short code, then the first three characters of the city
// name, then the first three characters of the package name. The result is
// always uppercased.
func BookingCodePrefix(cityCode, cityName, packageName string) string {
	if code := strings.TrimSpace(cityCode); code != "" {
		return strings.ToUpper(code)
	}
	if name := strings.TrimSpace(cityName); name != "" {
		return strings.ToUpper(firstN(name, 3))
	}
	return strings.ToUpper(firstN(strings.TrimSpace(packageName), 3))
}

// GenerateBookingCode returns PREFIX-SUFFIX where SUFFIX is 8 uppercase
// alphanumeric characters taken from a v4 UUID. Uniqueness is probabilistic;
// the booking_code UNIQUE constraint catches the rare collision.
func GenerateBookingCode(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, raw[:8])
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
