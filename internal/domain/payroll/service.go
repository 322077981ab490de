package payroll

import (
	"context"
	"io"

	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
)

type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// ImportTimesheet parses a raw punch export, reconciles shifts, matches
	// employees against the registry and persists a draft sheet.
	ImportTimesheet(ctx context.Context, req timesheet.ImportRequest, file io.Reader, filename string) (SheetResponse, error)

	// Sheets
	ListSheets(ctx context.Context, filter SheetFilter) (ListSheetResponse, error)
	GetSheet(ctx context.Context, id string) (SheetResponse, error)
	FinalizeSheet(ctx context.Context, id string) (SheetResponse, error)
	DeleteSheet(ctx context.Context, id string) error

	// Entries
	AddEntry(ctx context.Context, req AddEntryRequest) (EntryResponse, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)
	DeleteEntry(ctx context.Context, sheetID string, entryID string) error

	// Shifts inside an entry
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (EntryResponse, error)
	DeleteShift(ctx context.Context, sheetID string, entryID string, shiftID string) (EntryResponse, error)

	// Exports
	ExportSheetXLSX(ctx context.Context, id string) (filename string, data []byte, err error)
	RenderPayslipPDF(ctx context.Context, sheetID string, entryID string) (filename string, data []byte, err error)
}
