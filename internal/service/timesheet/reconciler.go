package timesheet

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
)

// BoundaryPolicy controls how punches are paired into shifts.
type BoundaryPolicy struct {
	// BoundaryHour is the cutoff hour separating one work day from the next
	// (05:00 by default: an OUT after 05:00 the next morning belongs to a
	// different shift than the preceding evening's IN).
	BoundaryHour int
	// EarlyInNextDay applies to IN punches before the cutoff hour: false puts
	// the boundary at the cutoff on the same calendar day, true on the next.
	EarlyInNextDay bool
}

func DefaultBoundaryPolicy() BoundaryPolicy {
	return BoundaryPolicy{BoundaryHour: 5, EarlyInNextDay: false}
}

// Reconcile pairs one employee's time-ordered punches into shifts. It scans
// with a lookahead of one: each cursor position is a candidate IN, the next
// row a candidate OUT. The pair is accepted when the OUT falls at or before
// the IN's boundary instant and the duration is positive; otherwise the IN is
// recorded as unmatched (an error string plus an invalid zero-hour shift) and
// the scan resumes at the next row. Unmatched punches are never fatal, they
// are surfaced for manual correction.
func Reconcile(punches timesheet.EmployeePunches, policy BoundaryPolicy) timesheet.ReconcileResult {
	result := timesheet.ReconcileResult{
		EmployeeName: punches.EmployeeName,
		EmployeeCode: punches.EmployeeCode,
	}

	rows := punches.Punches
	i := 0
	for i < len(rows) {
		in := rows[i]
		boundary := boundaryInstant(in.Timestamp, policy)

		if i+1 < len(rows) {
			out := rows[i+1]
			if !out.Timestamp.After(boundary) {
				hours := roundHours(out.Timestamp.Sub(in.Timestamp))
				if hours > 0 {
					outTime := out.Timestamp
					result.Shifts = append(result.Shifts, timesheet.Shift{
						ID:        uuid.NewString(),
						Date:      dateOf(in.Timestamp),
						InTime:    in.Timestamp,
						OutTime:   &outTime,
						Hours:     hours,
						IsWeekend: isWeekend(in.Timestamp),
						IsValid:   true,
					})
					i += 2
					continue
				}
			}
		}

		result.Errors = append(result.Errors, fmt.Sprintf(
			"unmatched punch at %s", in.Timestamp.Format("2006-01-02 15:04:05")))
		result.Shifts = append(result.Shifts, timesheet.Shift{
			ID:        uuid.NewString(),
			Date:      dateOf(in.Timestamp),
			InTime:    in.Timestamp,
			IsWeekend: isWeekend(in.Timestamp),
			IsValid:   false,
		})
		i++
	}

	var total, weekend float64
	for _, s := range result.Shifts {
		if !s.IsValid {
			continue
		}
		total += s.Hours
		if s.IsWeekend {
			weekend += s.Hours
		}
	}
	result.TotalHours = roundTo2(total)
	result.WeekendHours = roundTo2(weekend)

	return result
}

// RecomputeShift re-derives hours, weekend flag and validity after a manual
// edit of a shift's date or times. Overnight edits are normalized with the
// rule "if out <= in, the out belongs to the next day": 24 hours are added
// before subtracting. Agrees with Reconcile for shifts starting after the
// boundary hour and ending before the next morning's boundary.
func RecomputeShift(s *timesheet.Shift) {
	s.IsWeekend = isWeekend(s.InTime)

	if s.OutTime == nil {
		s.Hours = 0
		s.IsValid = false
		return
	}

	out := *s.OutTime
	if !out.After(s.InTime) {
		out = out.Add(24 * time.Hour)
	}
	s.Hours = roundHours(out.Sub(s.InTime))
	s.IsValid = s.Hours > 0
	if !s.IsValid {
		s.Hours = 0
	}
}

// boundaryInstant returns the cutoff for the shift starting at in: the
// boundary hour on the next day when the IN is at or after the boundary hour,
// otherwise on the same day (or the next, per policy).
func boundaryInstant(in time.Time, policy BoundaryPolicy) time.Time {
	day := dateOf(in)
	if in.Hour() >= policy.BoundaryHour || policy.EarlyInNextDay {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), policy.BoundaryHour, 0, 0, 0, in.Location())
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func roundHours(d time.Duration) float64 {
	return roundTo2(float64(d.Milliseconds()) / (1000 * 60 * 60))
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
