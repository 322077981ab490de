package payroll

import (
	"testing"

	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testSettings() payroll.Settings {
	return payroll.DefaultSettings("company-1")
}

func TestComputeSalaryHourly(t *testing.T) {
	entry := payroll.Entry{
		SalaryType: employee.SalaryTypeHourly,
		TotalHours: 10,
		HourlyRate: decimal.NewFromInt(15000),
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(150000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryCeilsToRoundingUnit(t *testing.T) {
	// 10.5 * 15333 = 160996.5, ceiled to the next 1000.
	entry := payroll.Entry{
		SalaryType: employee.SalaryTypeHourly,
		TotalHours: 10.5,
		HourlyRate: decimal.NewFromInt(15333),
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(161000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryFixedWithOvertime(t *testing.T) {
	entry := payroll.Entry{
		SalaryType:    employee.SalaryTypeFixed,
		FixedSalary:   decimal.NewFromInt(5000000),
		StandardHours: 200,
		TotalHours:    210,
		HourlyRate:    decimal.NewFromInt(30000),
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(5300000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryFixedNoOvertimeBelowStandardHours(t *testing.T) {
	entry := payroll.Entry{
		SalaryType:    employee.SalaryTypeFixed,
		FixedSalary:   decimal.NewFromInt(5000000),
		StandardHours: 200,
		TotalHours:    180,
		HourlyRate:    decimal.NewFromInt(30000),
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(5000000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryFixedDefaultsMissingFieldsToZero(t *testing.T) {
	// Unset fixedSalary/standardHours behave as 0: everything is overtime.
	entry := payroll.Entry{
		SalaryType: employee.SalaryTypeFixed,
		TotalHours: 10,
		HourlyRate: decimal.NewFromInt(20000),
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(200000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryWeekendBonusBothSchemes(t *testing.T) {
	settings := testSettings()

	hourly := payroll.Entry{
		SalaryType:   employee.SalaryTypeHourly,
		TotalHours:   10,
		WeekendHours: 4,
		HourlyRate:   decimal.NewFromInt(15000),
	}
	assert.True(t, decimal.NewFromInt(154000).Equal(ComputeSalary(hourly, settings)))

	fixed := payroll.Entry{
		SalaryType:    employee.SalaryTypeFixed,
		FixedSalary:   decimal.NewFromInt(5000000),
		StandardHours: 200,
		TotalHours:    200,
		WeekendHours:  4,
		HourlyRate:    decimal.NewFromInt(30000),
	}
	assert.True(t, decimal.NewFromInt(5004000).Equal(ComputeSalary(fixed, settings)))
}

func TestComputeSalaryAllowanceAdditivity(t *testing.T) {
	settings := testSettings()

	base := payroll.Entry{
		SalaryType: employee.SalaryTypeHourly,
		TotalHours: 10,
		HourlyRate: decimal.NewFromInt(15000),
	}
	before := ComputeSalary(base, settings)

	base.Allowances = []payroll.Allowance{{Name: "transport", Amount: decimal.NewFromInt(200000)}}
	after := ComputeSalary(base, settings)

	// 150000 is already a multiple of the unit, so the delta is exact.
	assert.True(t, before.Add(decimal.NewFromInt(200000)).Equal(after), "got %s -> %s", before, after)
}

func TestComputeSalaryNegativeAllowanceDeducts(t *testing.T) {
	entry := payroll.Entry{
		SalaryType: employee.SalaryTypeHourly,
		TotalHours: 10,
		HourlyRate: decimal.NewFromInt(15000),
		Allowances: []payroll.Allowance{{Name: "cash advance", Amount: decimal.NewFromInt(-50000)}},
	}

	salary := ComputeSalary(entry, testSettings())
	assert.True(t, decimal.NewFromInt(100000).Equal(salary), "got %s", salary)
}

func TestComputeSalaryIdempotent(t *testing.T) {
	entry := payroll.Entry{
		SalaryType:   employee.SalaryTypeHourly,
		TotalHours:   37.25,
		WeekendHours: 6.5,
		HourlyRate:   decimal.NewFromInt(17500),
		Allowances:   []payroll.Allowance{{Name: "meal", Amount: decimal.NewFromInt(150000)}},
	}
	settings := testSettings()

	first := ComputeSalary(entry, settings)
	second := ComputeSalary(entry, settings)
	assert.True(t, first.Equal(second))
}

func TestComputeSalaryZeroRoundingUnitSkipsCeiling(t *testing.T) {
	settings := testSettings()
	settings.RoundingUnit = decimal.Zero

	entry := payroll.Entry{
		SalaryType: employee.SalaryTypeHourly,
		TotalHours: 10.5,
		HourlyRate: decimal.NewFromInt(15333),
	}

	salary := ComputeSalary(entry, settings)
	assert.True(t, decimal.NewFromFloat(160996.5).Equal(salary), "got %s", salary)
}
