package timesheet

import (
	"testing"
	"time"

	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchesAt(times ...time.Time) timesheet.EmployeePunches {
	p := timesheet.EmployeePunches{EmployeeName: "Budi", EmployeeCode: "101"}
	for _, t := range times {
		p.Punches = append(p.Punches, timesheet.PunchEvent{
			EmployeeCode: "101",
			EmployeeName: "Budi",
			Timestamp:    t,
		})
	}
	return p
}

func TestReconcilePairsWeekdayShift(t *testing.T) {
	// Monday 2026-03-02.
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 1)
	shift := result.Shifts[0]
	assert.True(t, shift.IsValid)
	assert.False(t, shift.IsWeekend)
	assert.Equal(t, 9.0, shift.Hours)
	require.NotNil(t, shift.OutTime)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 9.0, result.TotalHours)
	assert.Equal(t, 0.0, result.WeekendHours)
}

func TestReconcileOvernightShiftWithinBoundary(t *testing.T) {
	// Friday 22:00 to Saturday 02:00, before the 05:00 boundary.
	in := time.Date(2026, 3, 6, 22, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 7, 2, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 1)
	shift := result.Shifts[0]
	assert.True(t, shift.IsValid)
	assert.Equal(t, 4.0, shift.Hours)
	// Attributed to the Friday IN, so not a weekend shift.
	assert.False(t, shift.IsWeekend)
	assert.Empty(t, result.Errors)
}

func TestReconcileOutPastBoundaryLeavesInUnmatched(t *testing.T) {
	// Friday 22:00; the next punch is Saturday 06:00, past the 05:00
	// Saturday boundary, so the Friday IN is unmatched and the Saturday
	// punch becomes a fresh candidate IN (itself a trailing unmatched).
	in := time.Date(2026, 3, 6, 22, 0, 0, 0, time.Local)
	next := time.Date(2026, 3, 7, 6, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(in, next), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 2)
	assert.False(t, result.Shifts[0].IsValid)
	assert.Equal(t, 0.0, result.Shifts[0].Hours)
	assert.Nil(t, result.Shifts[0].OutTime)
	assert.False(t, result.Shifts[1].IsValid)
	assert.Len(t, result.Errors, 2)
	assert.Equal(t, 0.0, result.TotalHours)
}

func TestReconcileUnmatchedTail(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(in), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 1)
	assert.False(t, result.Shifts[0].IsValid)
	assert.Equal(t, 0.0, result.Shifts[0].Hours)
	assert.Nil(t, result.Shifts[0].OutTime)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "2026-03-02 08:00:00")
}

func TestReconcileResumesAfterUnmatched(t *testing.T) {
	// Unmatched IN followed by a normal pair: the scan advances by one and
	// pairs the remaining two punches.
	lone := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	in := time.Date(2026, 3, 3, 9, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 3, 17, 30, 0, 0, time.Local)

	result := Reconcile(punchesAt(lone, in, out), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 2)
	assert.False(t, result.Shifts[0].IsValid)
	assert.True(t, result.Shifts[1].IsValid)
	assert.Equal(t, 8.5, result.Shifts[1].Hours)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 8.5, result.TotalHours)
}

func TestReconcileWeekendHours(t *testing.T) {
	// Saturday 2026-03-07.
	in := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 7, 16, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 1)
	assert.True(t, result.Shifts[0].IsWeekend)
	assert.Equal(t, 6.0, result.TotalHours)
	assert.Equal(t, 6.0, result.WeekendHours)
}

func TestReconcileZeroDurationIsUnmatched(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)

	result := Reconcile(punchesAt(at, at), DefaultBoundaryPolicy())

	// Duplicate scans pair to zero hours; both degrade to unmatched.
	require.Len(t, result.Shifts, 2)
	assert.False(t, result.Shifts[0].IsValid)
	assert.False(t, result.Shifts[1].IsValid)
	assert.Len(t, result.Errors, 2)
}

func TestReconcileEarlyMorningInPolicies(t *testing.T) {
	// IN at 03:00: under the default policy the boundary is 05:00 the same
	// day, so an OUT at 06:00 is past it and the IN stays unmatched.
	in := time.Date(2026, 3, 2, 3, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 2, 6, 0, 0, 0, time.Local)

	defaultResult := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())
	require.Len(t, defaultResult.Shifts, 2)
	assert.False(t, defaultResult.Shifts[0].IsValid)

	nextDay := BoundaryPolicy{BoundaryHour: 5, EarlyInNextDay: true}
	nextDayResult := Reconcile(punchesAt(in, out), nextDay)
	require.Len(t, nextDayResult.Shifts, 1)
	assert.True(t, nextDayResult.Shifts[0].IsValid)
	assert.Equal(t, 3.0, nextDayResult.Shifts[0].Hours)
}

func TestReconcileRoundsHoursToTwoDecimals(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	out := time.Date(2026, 3, 2, 16, 20, 0, 0, time.Local)

	result := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())

	require.Len(t, result.Shifts, 1)
	// 8h20m = 8.3333... rounded to 8.33.
	assert.Equal(t, 8.33, result.Shifts[0].Hours)
}

func TestRecomputeShift(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
		out := time.Date(2026, 3, 2, 17, 0, 0, 0, time.Local)
		s := timesheet.Shift{InTime: in, OutTime: &out}

		RecomputeShift(&s)

		assert.True(t, s.IsValid)
		assert.Equal(t, 9.0, s.Hours)
		assert.False(t, s.IsWeekend)
	})

	t.Run("out before in rolls to next day", func(t *testing.T) {
		in := time.Date(2026, 3, 6, 22, 0, 0, 0, time.Local)
		out := time.Date(2026, 3, 6, 2, 0, 0, 0, time.Local)
		s := timesheet.Shift{InTime: in, OutTime: &out}

		RecomputeShift(&s)

		assert.True(t, s.IsValid)
		assert.Equal(t, 4.0, s.Hours)
	})

	t.Run("missing out invalidates", func(t *testing.T) {
		in := time.Date(2026, 3, 7, 8, 0, 0, 0, time.Local)
		s := timesheet.Shift{InTime: in, Hours: 9, IsValid: true}

		RecomputeShift(&s)

		assert.False(t, s.IsValid)
		assert.Equal(t, 0.0, s.Hours)
		assert.True(t, s.IsWeekend)
	})

	t.Run("agrees with reconcile on overnight shift", func(t *testing.T) {
		in := time.Date(2026, 3, 6, 22, 0, 0, 0, time.Local)
		out := time.Date(2026, 3, 7, 2, 0, 0, 0, time.Local)

		reconciled := Reconcile(punchesAt(in, out), DefaultBoundaryPolicy())
		require.Len(t, reconciled.Shifts, 1)

		s := timesheet.Shift{InTime: in, OutTime: &out}
		RecomputeShift(&s)

		assert.Equal(t, reconciled.Shifts[0].Hours, s.Hours)
		assert.Equal(t, reconciled.Shifts[0].IsValid, s.IsValid)
		assert.Equal(t, reconciled.Shifts[0].IsWeekend, s.IsWeekend)
	})
}
