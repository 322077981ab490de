package payroll

import (
	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ComputeSalary derives the total salary for one payroll entry from its
// current field values. Pure and idempotent: it is invoked after every edit
// to any input field and the result written back into the entry before
// persisting, so the stored total is always a function of the other fields.
//
// Under the hourly scheme pay is rate times hours; under the fixed scheme a
// flat base is paid plus overtime beyond the contracted monthly hours, with
// HourlyRate acting as the overtime rate. Weekend hours earn the per-company
// bonus on top in both schemes, allowances are summed in as-is (negative
// amounts are ad-hoc deductions), and the result is ceiled to the next
// multiple of the company's rounding unit.
func ComputeSalary(entry payroll.Entry, settings payroll.Settings) decimal.Decimal {
	totalAllowance := decimal.Zero
	for _, a := range entry.Allowances {
		totalAllowance = totalAllowance.Add(a.Amount)
	}

	totalHours := decimal.NewFromFloat(entry.TotalHours)
	weekendHours := decimal.NewFromFloat(entry.WeekendHours)
	weekendBonus := weekendHours.Mul(settings.WeekendBonusPerHour)

	var raw decimal.Decimal
	if entry.SalaryType == employee.SalaryTypeFixed {
		otHours := decimal.NewFromFloat(entry.TotalHours - entry.StandardHours)
		if otHours.IsNegative() {
			otHours = decimal.Zero
		}
		raw = entry.FixedSalary.
			Add(otHours.Mul(entry.HourlyRate)).
			Add(weekendBonus).
			Add(totalAllowance)
	} else {
		raw = totalHours.Mul(entry.HourlyRate).
			Add(weekendBonus).
			Add(totalAllowance)
	}

	return ceilToUnit(raw, settings.RoundingUnit)
}

func ceilToUnit(v, unit decimal.Decimal) decimal.Decimal {
	if unit.IsZero() {
		return v
	}
	return v.Div(unit).Ceil().Mul(unit)
}
