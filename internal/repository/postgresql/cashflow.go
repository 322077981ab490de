package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openrms/pos-backend-go/internal/domain/cashflow"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type cashflowRepositoryImpl struct {
	db *database.DB
}

func NewCashflowRepository(db *database.DB) cashflow.CashflowRepository {
	return &cashflowRepositoryImpl{db: db}
}

// Create implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) Create(ctx context.Context, e cashflow.Entry) (cashflow.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cashflow_entries (company_id, date, kind, category, amount, note, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, date, kind, category, amount, note, source, created_at
	`

	var created cashflow.Entry
	err := q.QueryRow(ctx, query,
		e.CompanyID,
		e.Date,
		e.Kind,
		e.Category,
		e.Amount,
		e.Note,
		e.Source,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.Date,
		&created.Kind,
		&created.Category,
		&created.Amount,
		&created.Note,
		&created.Source,
		&created.CreatedAt,
	)
	if err != nil {
		return cashflow.Entry{}, fmt.Errorf("failed to create cashflow entry: %w", err)
	}
	return created, nil
}

// List implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) List(ctx context.Context, companyID string, filter cashflow.EntryFilter) ([]cashflow.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Kind != nil && *filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, filter.StartDate)
		argIdx++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM cashflow_entries WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cashflow entries: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, company_id, date, kind, category, amount, note, source, created_at
		FROM cashflow_entries
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cashflow entries: %w", err)
	}
	defer rows.Close()

	var entries []cashflow.Entry
	for rows.Next() {
		var e cashflow.Entry
		err := rows.Scan(
			&e.ID,
			&e.CompanyID,
			&e.Date,
			&e.Kind,
			&e.Category,
			&e.Amount,
			&e.Note,
			&e.Source,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cashflow entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// Delete implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM cashflow_entries WHERE id = $1 AND company_id = $2`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return cashflow.ErrEntryNotFound
	}
	return nil
}

// SumByKind implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) SumByKind(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
		FROM cashflow_entries
		WHERE company_id = $1 AND date >= $2 AND date <= $3
	`

	var income, expense decimal.Decimal
	if err := q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum cashflow by kind: %w", err)
	}
	return income, expense, nil
}

// SumByCategory implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) SumByCategory(ctx context.Context, companyID string, startDate, endDate time.Time) (map[string]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM cashflow_entries
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY category
	`

	rows, err := q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum cashflow by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var amount decimal.Decimal
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		sums[category] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sums, nil
}

// HasRollup implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) HasRollup(ctx context.Context, companyID string, date time.Time, source cashflow.Source) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM cashflow_entries
			WHERE company_id = $1 AND date = $2 AND source = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, date, source).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CompanyIDs implements cashflow.CashflowRepository.
func (r *cashflowRepositoryImpl) CompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id FROM companies`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
