package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/core-tools/hsu-proxy-await/pkg/errors"
)

// Unit factors in nanoseconds.
const (
	factorMillisecond = uint64(time.Millisecond)
	factorSecond      = uint64(time.Second)
	factorMinute      = uint64(time.Minute)
	factorHour        = uint64(time.Hour)
	factorDay         = 24 * uint64(time.Hour)
)

// Parse converts a human-readable duration string into a time.Duration.
//
// The grammar is an unsigned integer magnitude followed by an optional
// unit suffix from {ms, s, m, h, d}. A bare integer is accepted only
// when it is exactly zero: a unit-less zero means "no duration", while
// a bare positive integer is ambiguous and rejected. Leading and
// trailing whitespace is ignored. Magnitudes that would overflow
// time.Duration are rejected rather than wrapped.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	split := len(s)
	for split > 0 && !isDigit(s[split-1]) {
		split--
	}
	if split == 0 {
		return 0, errors.NewValidationError("invalid duration", nil).WithContext("input", s)
	}

	magnitude, err := strconv.ParseUint(s[:split], 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid duration", err).WithContext("input", s)
	}

	var factor uint64
	switch unit := s[split:]; unit {
	case "":
		if magnitude != 0 {
			return 0, errors.NewValidationError("invalid duration", nil).WithContext("input", s)
		}
		return 0, nil
	case "ms":
		factor = factorMillisecond
	case "s":
		factor = factorSecond
	case "m":
		factor = factorMinute
	case "h":
		factor = factorHour
	case "d":
		factor = factorDay
	default:
		return 0, errors.NewValidationError("invalid duration", nil).WithContext("input", s)
	}

	if magnitude > math.MaxInt64/factor {
		return 0, errors.NewValidationError("invalid duration", nil).WithContext("input", s)
	}
	return time.Duration(magnitude * factor), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
