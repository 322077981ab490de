package timesheet

import "time"

// PunchEvent is one raw clock-in or clock-out scan from the attendance device.
// Timestamps are wall-clock instants; the export carries no timezone.
type PunchEvent struct {
	EmployeeCode string
	EmployeeName string
	Timestamp    time.Time
}

// EmployeePunches groups one employee's punches, sorted ascending by timestamp.
type EmployeePunches struct {
	EmployeeName string
	EmployeeCode string
	Punches      []PunchEvent
}

// Shift is a reconciled work interval derived from one IN+OUT punch pair.
// A shift with IsValid=false has Hours=0 and no OutTime; it marks an IN punch
// that found no OUT before the day boundary and needs manual correction.
type Shift struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	InTime    time.Time  `json:"in_time"`
	OutTime   *time.Time `json:"out_time,omitempty"`
	Hours     float64    `json:"hours"`
	IsWeekend bool       `json:"is_weekend"`
	IsValid   bool       `json:"is_valid"`
}

// ReconcileResult is the outcome of pairing one employee's punches.
type ReconcileResult struct {
	EmployeeName string
	EmployeeCode string
	Shifts       []Shift
	// Errors describes unmatched punches in human-readable form. They are
	// never silently dropped: each one also appears as an invalid Shift.
	Errors       []string
	TotalHours   float64
	WeekendHours float64
}
