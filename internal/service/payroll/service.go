package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/company"
	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/openrms/pos-backend-go/internal/pkg/excel"
	"github.com/openrms/pos-backend-go/internal/pkg/pdf"
	"github.com/openrms/pos-backend-go/internal/pkg/storage"
	"github.com/openrms/pos-backend-go/internal/repository/postgresql"
	timesheetsvc "github.com/openrms/pos-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayrollRepository
	employee.EmployeeRepository
	company.CompanyRepository
	fileStorage storage.FileStorage
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	fileStorage storage.FileStorage,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                 db,
		PayrollRepository:  payrollRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
		fileStorage:        fileStorage,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// settingsOrDefault returns the company's stored payroll settings, falling
// back to the defaults when none were saved yet.
func (s *PayrollServiceImpl) settingsOrDefault(ctx context.Context, companyID string) (payroll.Settings, error) {
	settings, err := s.PayrollRepository.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.DefaultSettings(companyID), nil
		}
		return payroll.Settings{}, err
	}
	return settings, nil
}

// ========== SETTINGS ==========

// GetSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return toSettingsResponse(settings), nil
}

// UpdateSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	if req.WeekendBonusPerHour != nil {
		settings.WeekendBonusPerHour = *req.WeekendBonusPerHour
	}
	if req.RoundingUnit != nil {
		settings.RoundingUnit = *req.RoundingUnit
	}
	if req.DayBoundaryHour != nil {
		settings.DayBoundaryHour = *req.DayBoundaryHour
	}
	if req.EarlyInNextDay != nil {
		settings.EarlyInNextDay = *req.EarlyInNextDay
	}

	saved, err := s.PayrollRepository.UpsertSettings(ctx, settings)
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}
	return toSettingsResponse(saved), nil
}

// ========== IMPORT ==========

// ImportTimesheet implements payroll.PayrollService. The uploaded punch
// export is parsed and reconciled, each employee group is matched against the
// registry by code then case-insensitive name, salaries are computed and the
// whole result is persisted as a draft sheet. The raw export is archived so
// the import can be audited later.
func (s *PayrollServiceImpl) ImportTimesheet(ctx context.Context, req timesheet.ImportRequest, file io.Reader, filename string) (payroll.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SheetResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to read punch export: %w", err)
	}

	// Punch timestamps carry no timezone, so the window is interpreted in
	// the same local time as the timestamps themselves.
	startDate, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	endDate, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	policy := timesheetsvc.BoundaryPolicy{
		BoundaryHour:   settings.DayBoundaryHour,
		EarlyInNextDay: settings.EarlyInNextDay,
	}

	groups := timesheetsvc.ParsePunches(string(raw), startDate, endDate)
	if len(groups) == 0 {
		return payroll.SheetResponse{}, timesheet.ErrNoPunchData
	}

	var entries []payroll.Entry
	for _, group := range groups {
		result := timesheetsvc.Reconcile(group, policy)
		entry := payroll.Entry{
			EmployeeCode: group.EmployeeCode,
			EmployeeName: group.EmployeeName,
			TotalHours:   result.TotalHours,
			WeekendHours: result.WeekendHours,
			SalaryType:   employee.SalaryTypeHourly,
			Shifts:       result.Shifts,
			Errors:       result.Errors,
		}

		matched, err := s.matchEmployee(ctx, companyID, group.EmployeeCode, group.EmployeeName)
		if err != nil {
			return payroll.SheetResponse{}, err
		}
		if matched != nil {
			entry.EmployeeID = &matched.ID
			entry.EmployeeCode = matched.EmployeeCode
			entry.EmployeeName = matched.FullName
			entry.Role = matched.Role
			entry.SalaryType = matched.SalaryType
			entry.HourlyRate = matched.HourlyRate
			entry.FixedSalary = matched.FixedSalary
			entry.StandardHours = matched.StandardHours
		} else {
			entry.Errors = append(entry.Errors, fmt.Sprintf(
				"no registered employee matches code %q or name %q", group.EmployeeCode, group.EmployeeName))
		}

		entry.TotalSalary = ComputeSalary(entry, settings)
		entries = append(entries, entry)
	}

	sheet := payroll.Sheet{
		CompanyID: companyID,
		Title:     req.Title,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    payroll.SheetStatusDraft,
	}
	if sheet.Title == "" {
		sheet.Title = fmt.Sprintf("Payroll %s - %s", req.StartDate, req.EndDate)
	}

	archivePath := fmt.Sprintf("timesheets/%s/%d-%s", companyID, time.Now().Unix(), filename)
	if path, err := s.fileStorage.Upload(ctx, bytes.NewReader(raw), archivePath, "text/plain"); err == nil {
		sheet.SourceFilePath = &path
	} else {
		slog.Warn("failed to archive timesheet file", "path", archivePath, "error", err)
	}

	var created payroll.Sheet
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.PayrollRepository.CreateSheet(txCtx, sheet)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			entry.SheetID = created.ID
			stored, err := s.PayrollRepository.CreateEntry(txCtx, entry, companyID)
			if err != nil {
				return err
			}
			created.Entries = append(created.Entries, stored)
		}
		return nil
	})
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to persist payroll sheet: %w", err)
	}

	return s.toSheetResponse(ctx, created, true), nil
}

func (s *PayrollServiceImpl) matchEmployee(ctx context.Context, companyID, code, name string) (*employee.Employee, error) {
	if code != "" {
		found, err := s.EmployeeRepository.GetByCode(ctx, code, companyID)
		if err == nil {
			return &found, nil
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("failed to look up employee by code: %w", err)
		}
	}

	found, err := s.EmployeeRepository.FindByName(ctx, name, companyID)
	if err == nil {
		return &found, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, fmt.Errorf("failed to look up employee by name: %w", err)
	}
	return nil, nil
}

// ========== SHEETS ==========

// ListSheets implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSheets(ctx context.Context, filter payroll.SheetFilter) (payroll.ListSheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.ListSheetResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	sheets, total, err := s.PayrollRepository.ListSheets(ctx, companyID, filter)
	if err != nil {
		return payroll.ListSheetResponse{}, fmt.Errorf("failed to list payroll sheets: %w", err)
	}

	resp := payroll.ListSheetResponse{
		Data:       make([]payroll.SheetResponse, 0, len(sheets)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, sheet := range sheets {
		resp.Data = append(resp.Data, s.toSheetResponse(ctx, sheet, false))
	}
	return resp, nil
}

// GetSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSheet(ctx context.Context, id string) (payroll.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, id, companyID)
	if err != nil {
		return payroll.SheetResponse{}, err
	}
	return s.toSheetResponse(ctx, sheet, true), nil
}

// FinalizeSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) FinalizeSheet(ctx context.Context, id string) (payroll.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, id, companyID)
	if err != nil {
		return payroll.SheetResponse{}, err
	}
	if sheet.Status == payroll.SheetStatusFinalized {
		return payroll.SheetResponse{}, payroll.ErrSheetAlreadyFinalized
	}

	if err := s.PayrollRepository.UpdateSheetStatus(ctx, id, companyID, payroll.SheetStatusFinalized); err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to finalize sheet: %w", err)
	}
	sheet.Status = payroll.SheetStatusFinalized
	return s.toSheetResponse(ctx, sheet, true), nil
}

// DeleteSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteSheet(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if sheet.Status == payroll.SheetStatusFinalized {
		return payroll.ErrCannotDeleteFinalized
	}

	return s.PayrollRepository.DeleteSheet(ctx, id, companyID)
}

// ========== ENTRIES ==========

// AddEntry implements payroll.PayrollService. The entry starts zero
// initialized; hours, rates and allowances are filled in through patches.
func (s *PayrollServiceImpl) AddEntry(ctx context.Context, req payroll.AddEntryRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, req.SheetID, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	if sheet.Status == payroll.SheetStatusFinalized {
		return payroll.EntryResponse{}, payroll.ErrSheetAlreadyFinalized
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	entry := payroll.Entry{
		SheetID:      req.SheetID,
		EmployeeID:   req.EmployeeID,
		EmployeeCode: req.EmployeeCode,
		EmployeeName: req.EmployeeName,
		Role:         req.Role,
		SalaryType:   employee.SalaryTypeHourly,
	}
	if req.EmployeeID != nil {
		registered, err := s.EmployeeRepository.GetByID(ctx, *req.EmployeeID, companyID)
		if err != nil {
			return payroll.EntryResponse{}, err
		}
		entry.EmployeeCode = registered.EmployeeCode
		entry.EmployeeName = registered.FullName
		entry.Role = registered.Role
		entry.SalaryType = registered.SalaryType
		entry.HourlyRate = registered.HourlyRate
		entry.FixedSalary = registered.FixedSalary
		entry.StandardHours = registered.StandardHours
	}
	entry.TotalSalary = ComputeSalary(entry, settings)

	created, err := s.PayrollRepository.CreateEntry(ctx, entry, companyID)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return toEntryResponse(created), nil
}

// UpdateEntry implements payroll.PayrollService. The patch and the salary
// recompute happen inside one transaction so a stored total always matches
// the stored inputs.
func (s *PayrollServiceImpl) UpdateEntry(ctx context.Context, req payroll.UpdateEntryRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	var updated payroll.Entry
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		sheet, err := s.PayrollRepository.GetSheetByID(txCtx, req.SheetID, companyID)
		if err != nil {
			return err
		}
		if sheet.Status == payroll.SheetStatusFinalized {
			return payroll.ErrSheetAlreadyFinalized
		}

		entry, err := s.PayrollRepository.GetEntryByID(txCtx, req.EntryID, req.SheetID, companyID)
		if err != nil {
			return err
		}

		if req.Role != nil {
			entry.Role = *req.Role
		}
		if req.TotalHours != nil {
			entry.TotalHours = *req.TotalHours
		}
		if req.WeekendHours != nil {
			entry.WeekendHours = *req.WeekendHours
		}
		if req.HourlyRate != nil {
			entry.HourlyRate = *req.HourlyRate
		}
		if req.SalaryType != nil {
			entry.SalaryType = employee.SalaryType(*req.SalaryType)
		}
		if req.FixedSalary != nil {
			entry.FixedSalary = *req.FixedSalary
		}
		if req.StandardHours != nil {
			entry.StandardHours = *req.StandardHours
		}
		if req.Allowances != nil {
			allowances := make([]payroll.Allowance, 0, len(*req.Allowances))
			for _, a := range *req.Allowances {
				allowances = append(allowances, payroll.Allowance{Name: a.Name, Amount: a.Amount})
			}
			entry.Allowances = allowances
		}
		if req.Note != nil {
			entry.Note = *req.Note
		}

		entry.TotalSalary = ComputeSalary(entry, settings)

		if err := s.PayrollRepository.UpdateEntry(txCtx, entry, companyID); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return toEntryResponse(updated), nil
}

// DeleteEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteEntry(ctx context.Context, sheetID string, entryID string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, sheetID, companyID)
	if err != nil {
		return err
	}
	if sheet.Status == payroll.SheetStatusFinalized {
		return payroll.ErrSheetAlreadyFinalized
	}

	return s.PayrollRepository.DeleteEntry(ctx, entryID, sheetID, companyID)
}

// ========== SHIFTS ==========

// UpdateShift implements payroll.PayrollService. After the edit the shift's
// hours, weekend flag and validity are re-derived, the entry totals are
// re-aggregated and the salary recomputed, all inside one transaction.
func (s *PayrollServiceImpl) UpdateShift(ctx context.Context, req payroll.UpdateShiftRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	var updated payroll.Entry
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		sheet, err := s.PayrollRepository.GetSheetByID(txCtx, req.SheetID, companyID)
		if err != nil {
			return err
		}
		if sheet.Status == payroll.SheetStatusFinalized {
			return payroll.ErrSheetAlreadyFinalized
		}

		entry, err := s.PayrollRepository.GetEntryByID(txCtx, req.EntryID, req.SheetID, companyID)
		if err != nil {
			return err
		}

		idx := -1
		for i := range entry.Shifts {
			if entry.Shifts[i].ID == req.ShiftID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return payroll.ErrShiftNotFound
		}
		shift := &entry.Shifts[idx]

		if req.Date != nil {
			newDate, _ := time.ParseInLocation("2006-01-02", *req.Date, shift.InTime.Location())
			shift.InTime = combineDateTime(newDate, shift.InTime)
			if shift.OutTime != nil {
				out := combineDateTime(newDate, *shift.OutTime)
				shift.OutTime = &out
			}
			shift.Date = newDate
		}
		if req.InTime != nil {
			shift.InTime = parseClockOn(shift.Date, *req.InTime, shift.InTime.Location())
		}
		if req.OutTime != nil {
			if *req.OutTime == "" {
				shift.OutTime = nil
			} else {
				out := parseClockOn(shift.Date, *req.OutTime, shift.InTime.Location())
				shift.OutTime = &out
			}
		}

		timesheetsvc.RecomputeShift(shift)
		entry.RecalculateHours()
		entry.TotalSalary = ComputeSalary(entry, settings)

		if err := s.PayrollRepository.UpdateEntry(txCtx, entry, companyID); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return toEntryResponse(updated), nil
}

// DeleteShift implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteShift(ctx context.Context, sheetID string, entryID string, shiftID string) (payroll.EntryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	var updated payroll.Entry
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		sheet, err := s.PayrollRepository.GetSheetByID(txCtx, sheetID, companyID)
		if err != nil {
			return err
		}
		if sheet.Status == payroll.SheetStatusFinalized {
			return payroll.ErrSheetAlreadyFinalized
		}

		entry, err := s.PayrollRepository.GetEntryByID(txCtx, entryID, sheetID, companyID)
		if err != nil {
			return err
		}

		kept := entry.Shifts[:0]
		found := false
		for _, shift := range entry.Shifts {
			if shift.ID == shiftID {
				found = true
				continue
			}
			kept = append(kept, shift)
		}
		if !found {
			return payroll.ErrShiftNotFound
		}
		entry.Shifts = kept

		entry.RecalculateHours()
		entry.TotalSalary = ComputeSalary(entry, settings)

		if err := s.PayrollRepository.UpdateEntry(txCtx, entry, companyID); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return toEntryResponse(updated), nil
}

// combineDateTime keeps t's time-of-day on day's calendar date.
func combineDateTime(day, t time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// parseClockOn interprets a clock string relative to day: bare times
// ("15:04" or "15:04:05") are placed on day, full timestamps stand alone.
func parseClockOn(day time.Time, s string, loc *time.Location) time.Time {
	if ts, err := time.ParseInLocation("2006-01-02 15:04:05", s, loc); err == nil {
		return ts
	}
	var clock time.Time
	if ts, err := time.Parse("15:04:05", s); err == nil {
		clock = ts
	} else if ts, err := time.Parse("15:04", s); err == nil {
		clock = ts
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}

// ========== EXPORTS ==========

// ExportSheetXLSX implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportSheetXLSX(ctx context.Context, id string) (string, []byte, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return "", nil, err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, id, companyID)
	if err != nil {
		return "", nil, err
	}

	w := excel.NewWriter("Payroll")
	w.SetColumnWidths(6, 14, 24, 14, 12, 12, 12, 14, 14, 16, 16)
	w.AppendRow("No", "Code", "Name", "Role", "Hours", "Weekend", "Scheme", "Rate", "Allowances", "Salary", "Errors")

	totalSalary := decimal.Zero
	for i, entry := range sheet.Entries {
		allowanceTotal := decimal.Zero
		for _, a := range entry.Allowances {
			allowanceTotal = allowanceTotal.Add(a.Amount)
		}
		w.AppendRow(
			i+1,
			entry.EmployeeCode,
			entry.EmployeeName,
			entry.Role,
			entry.TotalHours,
			entry.WeekendHours,
			string(entry.SalaryType),
			entry.HourlyRate.String(),
			allowanceTotal.String(),
			entry.TotalSalary.String(),
			strings.Join(entry.Errors, "; "),
		)
		totalSalary = totalSalary.Add(entry.TotalSalary)
	}
	w.AppendRow()
	w.AppendRow("", "", "", "", "", "", "", "", "Total", totalSalary.String(), "")

	data, err := w.Bytes()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build xlsx export: %w", err)
	}

	filename := fmt.Sprintf("%s.xlsx", sanitizeFilename(sheet.Title))
	return filename, data, nil
}

// RenderPayslipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, sheetID string, entryID string) (string, []byte, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return "", nil, err
	}

	sheet, err := s.PayrollRepository.GetSheetByID(ctx, sheetID, companyID)
	if err != nil {
		return "", nil, err
	}
	entry, err := s.PayrollRepository.GetEntryByID(ctx, entryID, sheetID, companyID)
	if err != nil {
		return "", nil, err
	}
	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return "", nil, err
	}

	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	slip := pdf.Payslip{
		CompanyName:  comp.Name,
		PeriodLabel:  fmt.Sprintf("%s to %s", sheet.StartDate.Format("2006-01-02"), sheet.EndDate.Format("2006-01-02")),
		EmployeeName: entry.EmployeeName,
		EmployeeCode: entry.EmployeeCode,
		Role:         entry.Role,
		TotalLabel:   "Total salary",
		TotalAmount:  entry.TotalSalary.String(),
		Note:         entry.Note,
	}

	if entry.SalaryType == employee.SalaryTypeFixed {
		otHours := entry.TotalHours - entry.StandardHours
		if otHours < 0 {
			otHours = 0
		}
		slip.Lines = append(slip.Lines,
			pdf.PayslipLine{Label: "Base salary", Amount: entry.FixedSalary.String()},
			pdf.PayslipLine{Label: fmt.Sprintf("Overtime (%.2f h)", otHours),
				Amount: decimal.NewFromFloat(otHours).Mul(entry.HourlyRate).String()},
		)
	} else {
		slip.Lines = append(slip.Lines,
			pdf.PayslipLine{Label: fmt.Sprintf("Hours worked (%.2f h)", entry.TotalHours),
				Amount: decimal.NewFromFloat(entry.TotalHours).Mul(entry.HourlyRate).String()},
		)
	}
	if entry.WeekendHours > 0 {
		slip.Lines = append(slip.Lines, pdf.PayslipLine{
			Label:  fmt.Sprintf("Weekend bonus (%.2f h)", entry.WeekendHours),
			Amount: decimal.NewFromFloat(entry.WeekendHours).Mul(settings.WeekendBonusPerHour).String(),
		})
	}
	for _, a := range entry.Allowances {
		slip.Lines = append(slip.Lines, pdf.PayslipLine{Label: a.Name, Amount: a.Amount.String()})
	}

	data, err := pdf.RenderPayslip(slip)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	filename := fmt.Sprintf("payslip-%s.pdf", sanitizeFilename(entry.EmployeeName))
	return filename, data, nil
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "payroll"
	}
	replacer := strings.NewReplacer(" ", "-", "/", "-", "\\", "-")
	return strings.ToLower(replacer.Replace(s))
}

// ========== RESPONSES ==========

func toSettingsResponse(s payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		ID:                  s.ID,
		CompanyID:           s.CompanyID,
		WeekendBonusPerHour: s.WeekendBonusPerHour,
		RoundingUnit:        s.RoundingUnit,
		DayBoundaryHour:     s.DayBoundaryHour,
		EarlyInNextDay:      s.EarlyInNextDay,
	}
}

func toEntryResponse(e payroll.Entry) payroll.EntryResponse {
	allowances := make([]payroll.AllowanceDTO, 0, len(e.Allowances))
	for _, a := range e.Allowances {
		allowances = append(allowances, payroll.AllowanceDTO{Name: a.Name, Amount: a.Amount})
	}
	return payroll.EntryResponse{
		ID:            e.ID,
		SheetID:       e.SheetID,
		EmployeeID:    e.EmployeeID,
		EmployeeCode:  e.EmployeeCode,
		EmployeeName:  e.EmployeeName,
		Role:          e.Role,
		TotalHours:    e.TotalHours,
		WeekendHours:  e.WeekendHours,
		HourlyRate:    e.HourlyRate,
		SalaryType:    string(e.SalaryType),
		FixedSalary:   e.FixedSalary,
		StandardHours: e.StandardHours,
		Allowances:    allowances,
		Note:          e.Note,
		TotalSalary:   e.TotalSalary,
		Errors:        e.Errors,
		Shifts:        e.Shifts,
	}
}

func (s *PayrollServiceImpl) toSheetResponse(ctx context.Context, sheet payroll.Sheet, includeEntries bool) payroll.SheetResponse {
	resp := payroll.SheetResponse{
		ID:            sheet.ID,
		Title:         sheet.Title,
		StartDate:     sheet.StartDate.Format("2006-01-02"),
		EndDate:       sheet.EndDate.Format("2006-01-02"),
		Status:        string(sheet.Status),
		TotalSalary:   decimal.Zero,
		EmployeeCount: len(sheet.Entries),
	}

	for _, entry := range sheet.Entries {
		resp.TotalSalary = resp.TotalSalary.Add(entry.TotalSalary)
		resp.UnmatchedCount += len(entry.Errors)
		if includeEntries {
			resp.Entries = append(resp.Entries, toEntryResponse(entry))
		}
	}

	if sheet.SourceFilePath != nil {
		if url, err := s.fileStorage.GetURL(ctx, *sheet.SourceFilePath, 24*time.Hour); err == nil {
			resp.SourceFileURL = &url
		}
	}

	return resp
}
