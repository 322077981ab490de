package timesheet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchLine(code, name, ts string) string {
	return strings.Join([]string{"1", "DEV01", code, name, "0", "I", ts}, "\t")
}

func TestParsePunches(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	raw := strings.Join([]string{
		"No\tDeviceId\tEmployeeCode\tEmployeeName\tMode\tInOutFlag\tTimestamp",
		punchLine("101", "Budi", "2026/03/02 17:00:00"),
		punchLine("101", "Budi", "2026/03/02 08:00:00"),
		punchLine("102", "Sari", "2026-03-03 09:00:00"),
	}, "\n")

	groups := ParsePunches(raw, start, end)
	require.Len(t, groups, 2)

	budi := groups[0]
	assert.Equal(t, "Budi", budi.EmployeeName)
	assert.Equal(t, "101", budi.EmployeeCode)
	require.Len(t, budi.Punches, 2)
	// Sorted ascending regardless of file order.
	assert.True(t, budi.Punches[0].Timestamp.Before(budi.Punches[1].Timestamp))

	sari := groups[1]
	assert.Equal(t, "Sari", sari.EmployeeName)
	require.Len(t, sari.Punches, 1)
}

func TestParsePunchesSkipsMalformedLines(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	raw := strings.Join([]string{
		"header",
		"too\tfew\tfields",
		punchLine("101", "Budi", "not-a-timestamp"),
		punchLine("101", "Budi", "2026/03/02 08:00:00"),
	}, "\n")

	groups := ParsePunches(raw, start, end)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Punches, 1)
}

func TestParsePunchesWindowIsInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

	raw := strings.Join([]string{
		"header",
		punchLine("101", "Budi", "2026/02/28 23:59:59"),
		punchLine("101", "Budi", "2026/03/01 00:00:00"),
		punchLine("101", "Budi", "2026/03/02 23:59:59"),
		punchLine("101", "Budi", "2026/03/03 00:00:00"),
	}, "\n")

	groups := ParsePunches(raw, start, end)
	require.Len(t, groups, 1)
	// End date covers its whole day; punches outside the window are dropped.
	assert.Len(t, groups[0].Punches, 2)
}

func TestParsePunchesBlankNameFallsBackToCode(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	raw := strings.Join([]string{
		"header",
		punchLine("205", "", "2026/03/02 08:00:00"),
	}, "\n")

	groups := ParsePunches(raw, start, end)
	require.Len(t, groups, 1)
	assert.Equal(t, "employee-205", groups[0].EmployeeName)
}

func TestParsePunchesEmptyInput(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)

	assert.Empty(t, ParsePunches("", start, end))
	assert.Empty(t, ParsePunches("header only", start, end))
}
