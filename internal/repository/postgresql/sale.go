package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/sale"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type saleRepositoryImpl struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) sale.SaleRepository {
	return &saleRepositoryImpl{db: db}
}

// BulkCreate implements sale.SaleRepository.
func (r *saleRepositoryImpl) BulkCreate(ctx context.Context, sales []sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO sales (company_id, date, product_id, product_name, quantity, unit_price, total, source_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, s := range sales {
		batch.Queue(query, s.CompanyID, s.Date, s.ProductID, s.ProductName, s.Quantity, s.UnitPrice, s.Total, s.SourceFile)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for range sales {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert sales rows: %w", err)
		}
	}
	return nil
}

// List implements sale.SaleRepository.
func (r *saleRepositoryImpl) List(ctx context.Context, companyID string, filter sale.SaleFilter) ([]sale.Sale, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

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

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sales WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, company_id, date, product_id, product_name, quantity, unit_price, total, source_file, created_at
		FROM sales
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	var sales []sale.Sale
	for rows.Next() {
		var s sale.Sale
		err := rows.Scan(
			&s.ID,
			&s.CompanyID,
			&s.Date,
			&s.ProductID,
			&s.ProductName,
			&s.Quantity,
			&s.UnitPrice,
			&s.Total,
			&s.SourceFile,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// Delete implements sale.SaleRepository.
func (r *saleRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM sales WHERE id = $1 AND company_id = $2`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrSaleNotFound
	}
	return nil
}

// DailyRevenue implements sale.SaleRepository.
func (r *saleRepositoryImpl) DailyRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) ([]sale.DailyRevenue, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, COALESCE(SUM(total), 0)
		FROM sales
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily revenue: %w", err)
	}
	defer rows.Close()

	var days []sale.DailyRevenue
	for rows.Next() {
		var d sale.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return days, nil
}

// TotalRevenue implements sale.SaleRepository.
func (r *saleRepositoryImpl) TotalRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE company_id = $1 AND date >= $2 AND date <= $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}
