package timesheet

import (
	"sort"
	"strings"
	"time"

	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
)

// Attendance exports use either separator depending on device firmware.
var punchTimeLayouts = []string{
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
}

// Raw export columns: No, DeviceId, EmployeeCode, EmployeeName, Mode,
// InOutFlag, TimestampString.
const punchFieldCount = 7

// ParsePunches converts a raw tab-separated attendance export into punches
// grouped per employee, each group sorted ascending by timestamp. The first
// line is a header. Lines with fewer than seven fields and rows whose
// timestamp fails to parse are skipped; the export hardware is noisy and
// partial data is expected. Punches outside [start, end] are dropped, with
// end extended to the last second of its day.
func ParsePunches(raw string, start, end time.Time) []timesheet.EmployeePunches {
	windowEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	lines := strings.Split(raw, "\n")
	grouped := make(map[string]*timesheet.EmployeePunches)
	var order []string

	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(fields) < punchFieldCount {
			continue
		}

		code := strings.TrimSpace(fields[2])
		name := strings.TrimSpace(fields[3])
		if name == "" {
			name = "employee-" + code
		}

		ts, ok := parsePunchTime(strings.TrimSpace(fields[6]))
		if !ok {
			continue
		}
		if ts.Before(start) || ts.After(windowEnd) {
			continue
		}

		group, exists := grouped[name]
		if !exists {
			group = &timesheet.EmployeePunches{EmployeeName: name, EmployeeCode: code}
			grouped[name] = group
			order = append(order, name)
		}
		group.Punches = append(group.Punches, timesheet.PunchEvent{
			EmployeeCode: code,
			EmployeeName: name,
			Timestamp:    ts,
		})
	}

	results := make([]timesheet.EmployeePunches, 0, len(order))
	for _, name := range order {
		group := grouped[name]
		sort.Slice(group.Punches, func(a, b int) bool {
			return group.Punches[a].Timestamp.Before(group.Punches[b].Timestamp)
		})
		results = append(results, *group)
	}
	return results
}

func parsePunchTime(s string) (time.Time, bool) {
	for _, layout := range punchTimeLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
