package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/bill"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
)

type tableRepositoryImpl struct {
	db *database.DB
}

func NewTableRepository(db *database.DB) bill.TableRepository {
	return &tableRepositoryImpl{db: db}
}

// Create implements bill.TableRepository.
func (r *tableRepositoryImpl) Create(ctx context.Context, newTable bill.Table) (bill.Table, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tables (company_id, name, seats, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, name, seats, is_active, created_at, updated_at
	`

	var created bill.Table
	err := q.QueryRow(ctx, query,
		newTable.CompanyID,
		newTable.Name,
		newTable.Seats,
		newTable.IsActive,
	).Scan(
		&created.ID,
		&created.CompanyID,
		&created.Name,
		&created.Seats,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return bill.Table{}, err
	}
	return created, nil
}

// GetByID implements bill.TableRepository.
func (r *tableRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (bill.Table, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, seats, is_active, created_at, updated_at
		FROM tables
		WHERE id = $1 AND company_id = $2
	`

	var found bill.Table
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&found.ID,
		&found.CompanyID,
		&found.Name,
		&found.Seats,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill.Table{}, bill.ErrTableNotFound
		}
		return bill.Table{}, err
	}
	return found, nil
}

// List implements bill.TableRepository.
func (r *tableRepositoryImpl) List(ctx context.Context, companyID string) ([]bill.Table, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, seats, is_active, created_at, updated_at
		FROM tables
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []bill.Table
	for rows.Next() {
		var t bill.Table
		err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Seats, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}

// Delete implements bill.TableRepository.
func (r *tableRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM tables WHERE id = $1 AND company_id = $2`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return bill.ErrTableNotFound
	}
	return nil
}

type billRepositoryImpl struct {
	db *database.DB
}

func NewBillRepository(db *database.DB) bill.BillRepository {
	return &billRepositoryImpl{db: db}
}

const billColumns = `
	b.id, b.company_id, b.table_id, t.name, b.status, b.items, b.total,
	b.payment_method, b.note, b.opened_at, b.closed_at, b.created_at, b.updated_at
`

func scanBill(row pgx.Row) (bill.Bill, error) {
	var b bill.Bill
	var itemsBytes []byte
	err := row.Scan(
		&b.ID,
		&b.CompanyID,
		&b.TableID,
		&b.TableName,
		&b.Status,
		&itemsBytes,
		&b.Total,
		&b.PaymentMethod,
		&b.Note,
		&b.OpenedAt,
		&b.ClosedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return bill.Bill{}, err
	}
	_ = json.Unmarshal(itemsBytes, &b.Items)
	return b, nil
}

// Create implements bill.BillRepository.
func (r *billRepositoryImpl) Create(ctx context.Context, newBill bill.Bill) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	itemsJSON, _ := json.Marshal(newBill.Items)

	query := `
		INSERT INTO bills (company_id, table_id, status, items, total, payment_method, note, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newBill.CompanyID,
		newBill.TableID,
		newBill.Status,
		itemsJSON,
		newBill.Total,
		newBill.PaymentMethod,
		newBill.Note,
		newBill.OpenedAt,
	).Scan(&id)
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to create bill: %w", err)
	}

	return r.GetByID(ctx, id, newBill.CompanyID)
}

// GetByID implements bill.BillRepository.
func (r *billRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bills b
		LEFT JOIN tables t ON b.table_id = t.id
		WHERE b.id = $1 AND b.company_id = $2
	`, billColumns)

	found, err := scanBill(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill.Bill{}, bill.ErrBillNotFound
		}
		return bill.Bill{}, err
	}
	return found, nil
}

// GetOpenByTable implements bill.BillRepository.
func (r *billRepositoryImpl) GetOpenByTable(ctx context.Context, tableID string, companyID string) (bill.Bill, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bills b
		LEFT JOIN tables t ON b.table_id = t.id
		WHERE b.table_id = $1 AND b.company_id = $2 AND b.status = 'open'
		ORDER BY b.opened_at DESC
		LIMIT 1
	`, billColumns)

	found, err := scanBill(q.QueryRow(ctx, query, tableID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bill.Bill{}, bill.ErrBillNotFound
		}
		return bill.Bill{}, err
	}
	return found, nil
}

// List implements bill.BillRepository.
func (r *billRepositoryImpl) List(ctx context.Context, companyID string, filter bill.BillFilter) ([]bill.Bill, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"b.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("b.opened_at >= $%d", argIdx))
		args = append(args, filter.StartDate)
		argIdx++
	}
	if filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("b.opened_at < ($%d::date + 1)", argIdx))
		args = append(args, filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bills b WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM bills b
		LEFT JOIN tables t ON b.table_id = t.id
		WHERE %s
		ORDER BY b.opened_at DESC
		LIMIT $%d OFFSET $%d
	`, billColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []bill.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// Update implements bill.BillRepository.
func (r *billRepositoryImpl) Update(ctx context.Context, b bill.Bill) error {
	q := GetQuerier(ctx, r.db)

	itemsJSON, _ := json.Marshal(b.Items)

	query := `
		UPDATE bills
		SET status = $1, items = $2, total = $3, payment_method = $4, note = $5,
			closed_at = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8
	`

	tag, err := q.Exec(ctx, query,
		b.Status,
		itemsJSON,
		b.Total,
		b.PaymentMethod,
		b.Note,
		b.ClosedAt,
		b.ID,
		b.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}
