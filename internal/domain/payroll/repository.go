package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository defines data access for payroll sheets and settings.
// All methods take companyID to prevent cross-company data access.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, companyID string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// Sheets
	CreateSheet(ctx context.Context, sheet Sheet) (Sheet, error)
	GetSheetByID(ctx context.Context, id string, companyID string) (Sheet, error)
	ListSheets(ctx context.Context, companyID string, filter SheetFilter) ([]Sheet, int64, error)
	UpdateSheetStatus(ctx context.Context, id string, companyID string, status SheetStatus) error
	DeleteSheet(ctx context.Context, id string, companyID string) error

	// Entries (shifts, allowances and errors are embedded in the entry row)
	CreateEntry(ctx context.Context, entry Entry, companyID string) (Entry, error)
	GetEntryByID(ctx context.Context, id string, sheetID string, companyID string) (Entry, error)
	UpdateEntry(ctx context.Context, entry Entry, companyID string) error
	DeleteEntry(ctx context.Context, id string, sheetID string, companyID string) error

	// TotalSalaryForPeriod sums finalized payroll across the period, used by
	// cash-flow reporting.
	TotalSalaryForPeriod(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error)
}
