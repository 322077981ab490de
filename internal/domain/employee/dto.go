package employee

import (
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string           `json:"employee_code"`
	FullName      string           `json:"full_name"`
	Role          string           `json:"role"`
	SalaryType    string           `json:"salary_type"`
	HourlyRate    decimal.Decimal  `json:"hourly_rate"`
	FixedSalary   *decimal.Decimal `json:"fixed_salary,omitempty"`
	StandardHours *float64         `json:"standard_hours,omitempty"`
	PhoneNumber   *string          `json:"phone_number,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must be 1-16 digits"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.SalaryType != string(SalaryTypeHourly) && r.SalaryType != string(SalaryTypeFixed) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'hourly' or 'fixed'"})
	}
	if r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.FixedSalary != nil && r.FixedSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_salary", Message: "must be non-negative"})
	}
	if r.StandardHours != nil && *r.StandardHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID            string
	FullName      *string          `json:"full_name,omitempty"`
	Role          *string          `json:"role,omitempty"`
	SalaryType    *string          `json:"salary_type,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	FixedSalary   *decimal.Decimal `json:"fixed_salary,omitempty"`
	StandardHours *float64         `json:"standard_hours,omitempty"`
	PhoneNumber   *string          `json:"phone_number,omitempty"`
	Note          *string          `json:"note,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.SalaryType != nil && *r.SalaryType != string(SalaryTypeHourly) && *r.SalaryType != string(SalaryTypeFixed) {
		errs = append(errs, validator.ValidationError{Field: "salary_type", Message: "must be 'hourly' or 'fixed'"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.FixedSalary != nil && r.FixedSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_salary", Message: "must be non-negative"})
	}
	if r.StandardHours != nil && *r.StandardHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	EmployeeCode  string          `json:"employee_code"`
	FullName      string          `json:"full_name"`
	Role          string          `json:"role"`
	SalaryType    string          `json:"salary_type"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	FixedSalary   decimal.Decimal `json:"fixed_salary"`
	StandardHours float64         `json:"standard_hours"`
	PhoneNumber   *string         `json:"phone_number,omitempty"`
	Note          *string         `json:"note,omitempty"`
	IsActive      bool            `json:"is_active"`
}

type EmployeeFilter struct {
	Role       *string
	ActiveOnly bool
	Page       int
	Limit      int
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
