package payroll

import (
	"math"
	"time"

	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// Settings - company payroll configuration. Weekend premium and rounding
// granularity are business rules that vary by deployment, so they live here
// rather than as literals in the calculator.
type Settings struct {
	ID        string
	CompanyID string
	// WeekendBonusPerHour is added on top of base pay for every weekend hour,
	// in both salary schemes.
	WeekendBonusPerHour decimal.Decimal
	// RoundingUnit is the currency granularity salaries are ceiled to.
	RoundingUnit decimal.Decimal
	// DayBoundaryHour is the cutoff hour separating one work day from the
	// next when pairing punches (05:00 by default).
	DayBoundaryHour int
	// EarlyInNextDay controls the boundary for IN punches before the cutoff
	// hour: false attributes them a same-day boundary (the default policy),
	// true pushes the boundary to the next day.
	EarlyInNextDay bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultSettings returns the settings used until a company saves its own.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID:           companyID,
		WeekendBonusPerHour: decimal.NewFromInt(1000),
		RoundingUnit:        decimal.NewFromInt(1000),
		DayBoundaryHour:     5,
		EarlyInNextDay:      false,
	}
}

// Allowance is an arbitrary named addition to one payroll entry. Amount may
// be negative for ad-hoc deductions.
type Allowance struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SheetStatus enum
type SheetStatus string

const (
	SheetStatusDraft     SheetStatus = "draft"
	SheetStatusFinalized SheetStatus = "finalized"
)

// Sheet is one payroll run: a reporting period plus one Entry per employee.
type Sheet struct {
	ID             string
	CompanyID      string
	Title          string
	StartDate      time.Time
	EndDate        time.Time
	Status         SheetStatus
	SourceFilePath *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Entries []Entry
}

// Entry is one row of payroll aggregation for a reporting period.
// TotalSalary is always derived from the other fields by the calculator and
// is never settable directly.
type Entry struct {
	ID           string
	SheetID      string
	EmployeeID   *string
	EmployeeCode string
	EmployeeName string
	Role         string

	TotalHours   float64
	WeekendHours float64

	// HourlyRate is the pay rate under the hourly scheme, and the overtime
	// rate under the fixed scheme.
	HourlyRate    decimal.Decimal
	SalaryType    employee.SalaryType
	FixedSalary   decimal.Decimal
	StandardHours float64

	Allowances  []Allowance
	Note        string
	TotalSalary decimal.Decimal

	Errors []string
	Shifts []timesheet.Shift

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecalculateHours re-aggregates TotalHours and WeekendHours from the entry's
// valid shifts, re-rounding totals to 2 decimals after summation.
func (e *Entry) RecalculateHours() {
	var total, weekend float64
	for _, s := range e.Shifts {
		if !s.IsValid {
			continue
		}
		total += s.Hours
		if s.IsWeekend {
			weekend += s.Hours
		}
	}
	e.TotalHours = round2(total)
	e.WeekendHours = round2(weekend)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
