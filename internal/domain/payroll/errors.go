package payroll

import "errors"

var (
	ErrSettingsNotFound       = errors.New("payroll settings not found")
	ErrSheetNotFound          = errors.New("payroll sheet not found")
	ErrSheetAlreadyFinalized  = errors.New("payroll sheet already finalized, cannot modify")
	ErrEntryNotFound          = errors.New("payroll entry not found")
	ErrShiftNotFound          = errors.New("shift not found in payroll entry")
	ErrCannotDeleteFinalized  = errors.New("cannot delete finalized payroll sheet")
	ErrInvalidSalaryType      = errors.New("invalid salary type")
	ErrNoEmployeesInTimesheet = errors.New("no employees found in timesheet data")
)
