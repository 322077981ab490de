package payroll

import (
	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	WeekendBonusPerHour decimal.Decimal `json:"weekend_bonus_per_hour"`
	RoundingUnit        decimal.Decimal `json:"rounding_unit"`
	DayBoundaryHour     int             `json:"day_boundary_hour"`
	EarlyInNextDay      bool            `json:"early_in_next_day"`
}

type UpdateSettingsRequest struct {
	WeekendBonusPerHour *decimal.Decimal `json:"weekend_bonus_per_hour,omitempty"`
	RoundingUnit        *decimal.Decimal `json:"rounding_unit,omitempty"`
	DayBoundaryHour     *int             `json:"day_boundary_hour,omitempty"`
	EarlyInNextDay      *bool            `json:"early_in_next_day,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WeekendBonusPerHour != nil && r.WeekendBonusPerHour.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekend_bonus_per_hour", Message: "must be non-negative"})
	}
	if r.RoundingUnit != nil && !r.RoundingUnit.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "rounding_unit", Message: "must be positive"})
	}
	if r.DayBoundaryHour != nil && (*r.DayBoundaryHour < 0 || *r.DayBoundaryHour > 23) {
		errs = append(errs, validator.ValidationError{Field: "day_boundary_hour", Message: "must be between 0 and 23"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SHEET / ENTRY DTOs ==========

type AllowanceDTO struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type EntryResponse struct {
	ID            string             `json:"id"`
	SheetID       string             `json:"sheet_id"`
	EmployeeID    *string            `json:"employee_id,omitempty"`
	EmployeeCode  string             `json:"employee_code"`
	EmployeeName  string             `json:"employee_name"`
	Role          string             `json:"role"`
	TotalHours    float64            `json:"total_hours"`
	WeekendHours  float64            `json:"weekend_hours"`
	HourlyRate    decimal.Decimal    `json:"hourly_rate"`
	SalaryType    string             `json:"salary_type"`
	FixedSalary   decimal.Decimal    `json:"fixed_salary"`
	StandardHours float64            `json:"standard_hours"`
	Allowances    []AllowanceDTO     `json:"allowances"`
	Note          string             `json:"note,omitempty"`
	TotalSalary   decimal.Decimal    `json:"total_salary"`
	Errors        []string           `json:"errors,omitempty"`
	Shifts        []timesheet.Shift  `json:"shifts"`
}

type SheetResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	Status         string          `json:"status"`
	SourceFileURL  *string         `json:"source_file_url,omitempty"`
	TotalSalary    decimal.Decimal `json:"total_salary"`
	EmployeeCount  int             `json:"employee_count"`
	UnmatchedCount int             `json:"unmatched_count"`
	Entries        []EntryResponse `json:"entries,omitempty"`
}

type ListSheetResponse struct {
	Data       []SheetResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

type SheetFilter struct {
	Status *string
	Page   int
	Limit  int
}

// AddEntryRequest creates a manual, zero-initialized payroll entry for an
// employee that has no punch data in the period.
type AddEntryRequest struct {
	SheetID      string
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Role         string  `json:"role"`
}

func (r *AddEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeName) {
		errs = append(errs, validator.ValidationError{Field: "employee_name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEntryRequest patches one payroll entry. Only non-nil fields are
// applied, so an invalid field name cannot slip through as a silent no-op.
// TotalSalary is deliberately absent: it is always recomputed.
type UpdateEntryRequest struct {
	SheetID string
	EntryID string

	Role          *string          `json:"role,omitempty"`
	TotalHours    *float64         `json:"total_hours,omitempty"`
	WeekendHours  *float64         `json:"weekend_hours,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	SalaryType    *string          `json:"salary_type,omitempty"`
	FixedSalary   *decimal.Decimal `json:"fixed_salary,omitempty"`
	StandardHours *float64         `json:"standard_hours,omitempty"`
	Allowances    *[]AllowanceDTO  `json:"allowances,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SalaryType != nil && *r.SalaryType != string(employee.SalaryTypeHourly) && *r.SalaryType != string(employee.SalaryTypeFixed) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'hourly' or 'fixed'"})
	}
	if r.Allowances != nil {
		for _, a := range *r.Allowances {
			if validator.IsEmpty(a.Name) {
				errs = append(errs, validator.ValidationError{Field: "allowances", Message: "allowance name is required"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateShiftRequest patches one shift inside a payroll entry. Times are
// wall-clock strings: "HH:mm:ss" (combined with the shift date) or a full
// "YYYY-MM-DD HH:mm:ss" timestamp.
type UpdateShiftRequest struct {
	SheetID string
	EntryID string
	ShiftID string

	Date    *string `json:"date,omitempty"`
	InTime  *string `json:"in_time,omitempty"`
	OutTime *string `json:"out_time,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.InTime != nil {
		if _, ok := validator.IsValidClockTime(*r.InTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "in_time", Message: "must be a valid time"})
		}
	}
	if r.OutTime != nil && *r.OutTime != "" {
		if _, ok := validator.IsValidClockTime(*r.OutTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "out_time", Message: "must be a valid time"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
