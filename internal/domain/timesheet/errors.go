package timesheet

import "errors"

var (
	// ErrNoPunchData signals that no usable punches remained after parsing
	// and window filtering. Callers decide whether that is a failure.
	ErrNoPunchData = errors.New("no punch data in the selected period")
)
