package domain

import "time"

// DailyRecord is the persisted per-workday summary, unique per
// (UserID, Day, ContractID). Every aggregation run overwrites the derived
// fields in place; corrections to past entries converge by re-aggregation.
type DailyRecord struct {
	ID              string
	UserID          string
	Day             string // civil date "YYYY-MM-DD" in the workday timezone
	ContractID      string
	TotalWorkHours  float64 // net work time, rounded to two decimals
	TotalBreakHours float64 // enforced break time, rounded to two decimals
	HasErrors       bool
	ErrorDetails    string // joined issue details, "" when clean
	UpdatedAt       time.Time
}
