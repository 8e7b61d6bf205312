package worktime

import (
	"fmt"
	"time"
)

// NoTimeStr is the sentinel rendered for an absent instant.
const NoTimeStr = "--:--"

// ToTimeStr formats an instant as "HH:MM", or the sentinel for nil.
// The instant is rendered in its own location; convert with ToLocalTimeStr
// when a civil timezone is required. Display-only, never used for decisions.
func ToTimeStr(t *time.Time) string {
	if t == nil {
		return NoTimeStr
	}
	return t.Format("15:04")
}

// ToLocalTimeStr formats an instant as "HH:MM" in loc, or the sentinel for nil.
func ToLocalTimeStr(t *time.Time, loc *time.Location) string {
	if t == nil {
		return NoTimeStr
	}
	local := t.In(loc)
	return ToTimeStr(&local)
}

// FormatMinutes renders a minute count as "H:MM" (e.g. 510 -> "8:30").
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
