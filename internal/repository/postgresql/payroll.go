package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepositoryImpl) GetSettings(ctx context.Context, companyID string) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, weekend_bonus_per_hour, rounding_unit,
			   day_boundary_hour, early_in_next_day, created_at, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID,
		&s.CompanyID,
		&s.WeekendBonusPerHour,
		&s.RoundingUnit,
		&s.DayBoundaryHour,
		&s.EarlyInNextDay,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, err
	}
	return s, nil
}

func (r *payrollRepositoryImpl) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			company_id, weekend_bonus_per_hour, rounding_unit, day_boundary_hour, early_in_next_day
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET
			weekend_bonus_per_hour = EXCLUDED.weekend_bonus_per_hour,
			rounding_unit = EXCLUDED.rounding_unit,
			day_boundary_hour = EXCLUDED.day_boundary_hour,
			early_in_next_day = EXCLUDED.early_in_next_day,
			updated_at = NOW()
		RETURNING id, company_id, weekend_bonus_per_hour, rounding_unit,
				  day_boundary_hour, early_in_next_day, created_at, updated_at
	`

	var saved payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.CompanyID,
		settings.WeekendBonusPerHour,
		settings.RoundingUnit,
		settings.DayBoundaryHour,
		settings.EarlyInNextDay,
	).Scan(
		&saved.ID,
		&saved.CompanyID,
		&saved.WeekendBonusPerHour,
		&saved.RoundingUnit,
		&saved.DayBoundaryHour,
		&saved.EarlyInNextDay,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}
	return saved, nil
}

// ========== SHEETS ==========

func (r *payrollRepositoryImpl) CreateSheet(ctx context.Context, sheet payroll.Sheet) (payroll.Sheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_sheets (company_id, title, start_date, end_date, status, source_file_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_id, title, start_date, end_date, status, source_file_path, created_at, updated_at
	`

	var created payroll.Sheet
	err := q.QueryRow(ctx, query,
		sheet.CompanyID,
		sheet.Title,
		sheet.StartDate,
		sheet.EndDate,
		sheet.Status,
		sheet.SourceFilePath,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.Title,
		&created.StartDate,
		&created.EndDate,
		&created.Status,
		&created.SourceFilePath,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to create payroll sheet: %w", err)
	}
	return created, nil
}

func (r *payrollRepositoryImpl) GetSheetByID(ctx context.Context, id string, companyID string) (payroll.Sheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, start_date, end_date, status, source_file_path, created_at, updated_at
		FROM payroll_sheets
		WHERE id = $1 AND company_id = $2
	`

	var sheet payroll.Sheet
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sheet.ID,
		&sheet.CompanyID,
		&sheet.Title,
		&sheet.StartDate,
		&sheet.EndDate,
		&sheet.Status,
		&sheet.SourceFilePath,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Sheet{}, payroll.ErrSheetNotFound
		}
		return payroll.Sheet{}, err
	}

	entries, err := r.entriesForSheets(ctx, []string{sheet.ID})
	if err != nil {
		return payroll.Sheet{}, err
	}
	sheet.Entries = entries[sheet.ID]

	return sheet, nil
}

func (r *payrollRepositoryImpl) ListSheets(ctx context.Context, companyID string, filter payroll.SheetFilter) ([]payroll.Sheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payroll_sheets WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll sheets: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, company_id, title, start_date, end_date, status, source_file_path, created_at, updated_at
		FROM payroll_sheets
		WHERE %s
		ORDER BY end_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll sheets: %w", err)
	}
	defer rows.Close()

	var sheets []payroll.Sheet
	var sheetIDs []string
	for rows.Next() {
		var sheet payroll.Sheet
		err := rows.Scan(
			&sheet.ID,
			&sheet.CompanyID,
			&sheet.Title,
			&sheet.StartDate,
			&sheet.EndDate,
			&sheet.Status,
			&sheet.SourceFilePath,
			&sheet.CreatedAt,
			&sheet.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll sheet: %w", err)
		}
		sheets = append(sheets, sheet)
		sheetIDs = append(sheetIDs, sheet.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(sheetIDs) > 0 {
		entriesBySheet, err := r.entriesForSheets(ctx, sheetIDs)
		if err != nil {
			return nil, 0, err
		}
		for i := range sheets {
			sheets[i].Entries = entriesBySheet[sheets[i].ID]
		}
	}

	return sheets, total, nil
}

func (r *payrollRepositoryImpl) UpdateSheetStatus(ctx context.Context, id string, companyID string, status payroll.SheetStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_sheets
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, status, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSheetNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) DeleteSheet(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// Entries are removed by the ON DELETE CASCADE on payroll_entries.sheet_id.
	query := `DELETE FROM payroll_sheets WHERE id = $1 AND company_id = $2`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSheetNotFound
	}
	return nil
}

// ========== ENTRIES ==========

const entryColumns = `
	e.id, e.sheet_id, e.employee_id, e.employee_code, e.employee_name, e.role,
	e.total_hours, e.weekend_hours, e.hourly_rate, e.salary_type, e.fixed_salary,
	e.standard_hours, e.allowances, e.note, e.total_salary, e.errors, e.shifts,
	e.created_at, e.updated_at
`

func scanEntry(row pgx.Row) (payroll.Entry, error) {
	var e payroll.Entry
	var allowancesBytes, errorsBytes, shiftsBytes []byte
	err := row.Scan(
		&e.ID,
		&e.SheetID,
		&e.EmployeeID,
		&e.EmployeeCode,
		&e.EmployeeName,
		&e.Role,
		&e.TotalHours,
		&e.WeekendHours,
		&e.HourlyRate,
		&e.SalaryType,
		&e.FixedSalary,
		&e.StandardHours,
		&allowancesBytes,
		&e.Note,
		&e.TotalSalary,
		&errorsBytes,
		&shiftsBytes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return payroll.Entry{}, err
	}
	if len(allowancesBytes) > 0 {
		if err := json.Unmarshal(allowancesBytes, &e.Allowances); err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to decode allowances: %w", err)
		}
	}
	if len(errorsBytes) > 0 {
		if err := json.Unmarshal(errorsBytes, &e.Errors); err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to decode entry errors: %w", err)
		}
	}
	if len(shiftsBytes) > 0 {
		if err := json.Unmarshal(shiftsBytes, &e.Shifts); err != nil {
			return payroll.Entry{}, fmt.Errorf("failed to decode shifts: %w", err)
		}
	}
	return e, nil
}

func (r *payrollRepositoryImpl) entriesForSheets(ctx context.Context, sheetIDs []string) (map[string][]payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_entries e
		WHERE e.sheet_id = ANY($1)
		ORDER BY e.employee_name ASC
	`, entryColumns)

	rows, err := q.Query(ctx, query, sheetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll entries: %w", err)
	}
	defer rows.Close()

	entriesBySheet := make(map[string][]payroll.Entry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entriesBySheet[entry.SheetID] = append(entriesBySheet[entry.SheetID], entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entriesBySheet, nil
}

func (r *payrollRepositoryImpl) CreateEntry(ctx context.Context, entry payroll.Entry, companyID string) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, _ := json.Marshal(entry.Allowances)
	errorsJSON, _ := json.Marshal(entry.Errors)
	shiftsJSON, _ := json.Marshal(entry.Shifts)

	query := fmt.Sprintf(`
		INSERT INTO payroll_entries (
			sheet_id, employee_id, employee_code, employee_name, role,
			total_hours, weekend_hours, hourly_rate, salary_type, fixed_salary,
			standard_hours, allowances, note, total_salary, errors, shifts
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		WHERE EXISTS (SELECT 1 FROM payroll_sheets WHERE id = $1 AND company_id = $17)
		RETURNING %s
	`, strings.ReplaceAll(entryColumns, "e.", ""))

	created, err := scanEntry(q.QueryRow(ctx, query,
		entry.SheetID,
		entry.EmployeeID,
		entry.EmployeeCode,
		entry.EmployeeName,
		entry.Role,
		entry.TotalHours,
		entry.WeekendHours,
		entry.HourlyRate,
		entry.SalaryType,
		entry.FixedSalary,
		entry.StandardHours,
		allowancesJSON,
		entry.Note,
		entry.TotalSalary,
		errorsJSON,
		shiftsJSON,
		companyID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrSheetNotFound
		}
		return payroll.Entry{}, fmt.Errorf("failed to create payroll entry: %w", err)
	}
	return created, nil
}

func (r *payrollRepositoryImpl) GetEntryByID(ctx context.Context, id string, sheetID string, companyID string) (payroll.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_entries e
		JOIN payroll_sheets s ON e.sheet_id = s.id
		WHERE e.id = $1 AND e.sheet_id = $2 AND s.company_id = $3
	`, entryColumns)

	found, err := scanEntry(q.QueryRow(ctx, query, id, sheetID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Entry{}, payroll.ErrEntryNotFound
		}
		return payroll.Entry{}, err
	}
	return found, nil
}

func (r *payrollRepositoryImpl) UpdateEntry(ctx context.Context, entry payroll.Entry, companyID string) error {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, _ := json.Marshal(entry.Allowances)
	errorsJSON, _ := json.Marshal(entry.Errors)
	shiftsJSON, _ := json.Marshal(entry.Shifts)

	query := `
		UPDATE payroll_entries e
		SET employee_id = $1, employee_code = $2, employee_name = $3, role = $4,
			total_hours = $5, weekend_hours = $6, hourly_rate = $7, salary_type = $8,
			fixed_salary = $9, standard_hours = $10, allowances = $11, note = $12,
			total_salary = $13, errors = $14, shifts = $15, updated_at = NOW()
		FROM payroll_sheets s
		WHERE e.id = $16 AND e.sheet_id = s.id AND s.company_id = $17
	`

	tag, err := q.Exec(ctx, query,
		entry.EmployeeID,
		entry.EmployeeCode,
		entry.EmployeeName,
		entry.Role,
		entry.TotalHours,
		entry.WeekendHours,
		entry.HourlyRate,
		entry.SalaryType,
		entry.FixedSalary,
		entry.StandardHours,
		allowancesJSON,
		entry.Note,
		entry.TotalSalary,
		errorsJSON,
		shiftsJSON,
		entry.ID,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}
	return nil
}

func (r *payrollRepositoryImpl) DeleteEntry(ctx context.Context, id string, sheetID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_entries e
		USING payroll_sheets s
		WHERE e.id = $1 AND e.sheet_id = $2 AND e.sheet_id = s.id AND s.company_id = $3
	`

	tag, err := q.Exec(ctx, query, id, sheetID, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrEntryNotFound
	}
	return nil
}

// ========== AGGREGATES ==========

func (r *payrollRepositoryImpl) TotalSalaryForPeriod(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	// Sheets are attributed to the period their end date falls in.
	query := `
		SELECT COALESCE(SUM(e.total_salary), 0)
		FROM payroll_entries e
		JOIN payroll_sheets s ON e.sheet_id = s.id
		WHERE s.company_id = $1
		  AND s.status = 'finalized'
		  AND s.end_date >= $2 AND s.end_date <= $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payroll for period: %w", err)
	}
	return total, nil
}
