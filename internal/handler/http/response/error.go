package response

import (
	"errors"
	"net/http"

	"github.com/openrms/pos-backend-go/internal/domain/auth"
	"github.com/openrms/pos-backend-go/internal/domain/bill"
	"github.com/openrms/pos-backend-go/internal/domain/cashflow"
	"github.com/openrms/pos-backend-go/internal/domain/company"
	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/openrms/pos-backend-go/internal/domain/sale"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/openrms/pos-backend-go/internal/domain/user"
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Company domain errors
	case errors.Is(err, auth.ErrCompanyNotFound), errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyUsernameExists):
		Conflict(w, "Company username already taken")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrInvalidSalaryType):
		BadRequest(w, "Invalid salary type", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSheetNotFound):
		NotFound(w, "Payroll sheet not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, payroll.ErrSettingsNotFound):
		NotFound(w, "Payroll settings not found")
	case errors.Is(err, payroll.ErrSheetAlreadyFinalized):
		Conflict(w, "Payroll sheet already finalized")
	case errors.Is(err, payroll.ErrCannotDeleteFinalized):
		Conflict(w, "Cannot delete a finalized payroll sheet")
	case errors.Is(err, payroll.ErrNoEmployeesInTimesheet), errors.Is(err, timesheet.ErrNoPunchData):
		BadRequest(w, err.Error(), nil)

	// Product domain errors
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrProductNameExists):
		Conflict(w, "Product name already exists")

	// Sale domain errors
	case errors.Is(err, sale.ErrSaleNotFound):
		NotFound(w, "Sale not found")
	case errors.Is(err, sale.ErrNoSalesRows):
		BadRequest(w, "No usable sales rows in workbook", nil)

	// Bill domain errors
	case errors.Is(err, bill.ErrTableNotFound):
		NotFound(w, "Table not found")
	case errors.Is(err, bill.ErrTableNameExists):
		Conflict(w, "Table name already exists")
	case errors.Is(err, bill.ErrBillNotFound):
		NotFound(w, "Bill not found")
	case errors.Is(err, bill.ErrBillItemNotFound):
		NotFound(w, "Bill item not found")
	case errors.Is(err, bill.ErrBillNotOpen):
		Conflict(w, "Bill is not open")
	case errors.Is(err, bill.ErrTableOccupied):
		Conflict(w, "Table already has an open bill")

	// Cash flow domain errors
	case errors.Is(err, cashflow.ErrEntryNotFound):
		NotFound(w, "Cash flow entry not found")
	case errors.Is(err, cashflow.ErrInvalidKind):
		BadRequest(w, "Invalid cash flow kind", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
