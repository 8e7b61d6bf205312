package worktime

import (
	"errors"
	"fmt"
	"time"
)

// Timestamp validation errors. Wrapped with detail at the call site; match
// with errors.Is.
var (
	ErrInvalidFormat  = errors.New("timestamp has invalid format")
	ErrTooFarInFuture = errors.New("timestamp too far in the future")
	ErrTooFarInPast   = errors.New("timestamp too far in the past")
)

// Policy validates that a proposed punch timestamp is plausible relative to
// now. One uniform tolerance pair applies to every entry path.
type Policy struct {
	FutureGrace time.Duration
	PastGrace   time.Duration
}

// DefaultPolicy allows small clock skew into the future and back-filling
// punches within one day.
func DefaultPolicy() Policy {
	return Policy{
		FutureGrace: 5 * time.Minute,
		PastGrace:   24 * time.Hour,
	}
}

// Validate checks candidate against the tolerance window around now.
func (p Policy) Validate(candidate, now time.Time) error {
	if candidate.IsZero() {
		return fmt.Errorf("zero timestamp: %w", ErrInvalidFormat)
	}
	if candidate.After(now.Add(p.FutureGrace)) {
		return fmt.Errorf("%w: %s is beyond %s grace",
			ErrTooFarInFuture, candidate.Format(time.RFC3339), p.FutureGrace)
	}
	if candidate.Before(now.Add(-p.PastGrace)) {
		return fmt.Errorf("%w: %s is beyond %s grace",
			ErrTooFarInPast, candidate.Format(time.RFC3339), p.PastGrace)
	}
	return nil
}

// ParseAndValidate parses raw as RFC3339 or "HH:MM" (today in loc) and
// validates the result. An empty raw resolves to now.
func (p Policy) ParseAndValidate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return now, nil
	}

	var candidate time.Time
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		candidate = t
	} else if hm, err := time.ParseInLocation("15:04", raw, loc); err == nil {
		local := now.In(loc)
		candidate = time.Date(local.Year(), local.Month(), local.Day(),
			hm.Hour(), hm.Minute(), 0, 0, loc)
	} else {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	if err := p.Validate(candidate, now); err != nil {
		return time.Time{}, err
	}
	return candidate, nil
}
