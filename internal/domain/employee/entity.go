package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType selects the compensation scheme.
type SalaryType string

const (
	// SalaryTypeHourly pays rate x hours.
	SalaryTypeHourly SalaryType = "hourly"
	// SalaryTypeFixed pays a flat base plus overtime beyond the contracted
	// monthly hours; HourlyRate is the overtime rate under this scheme.
	SalaryTypeFixed SalaryType = "fixed"
)

type Employee struct {
	ID        string
	CompanyID string
	// EmployeeCode matches the code reported by the attendance device.
	EmployeeCode  string
	FullName      string
	Role          string // job category: waiter, kitchen, cashier, ...
	SalaryType    SalaryType
	HourlyRate    decimal.Decimal
	FixedSalary   decimal.Decimal
	StandardHours float64
	PhoneNumber   *string
	Note          *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
