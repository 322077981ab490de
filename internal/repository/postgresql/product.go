package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
)

type productRepositoryImpl struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepositoryImpl{db: db}
}

const productColumns = `
	id, company_id, name, category, unit, cost_price, sale_price,
	is_active, created_at, updated_at
`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Name,
		&p.Category,
		&p.Unit,
		&p.CostPrice,
		&p.SalePrice,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements product.ProductRepository.
func (r *productRepositoryImpl) Create(ctx context.Context, newProduct product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO products (company_id, name, category, unit, cost_price, sale_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, productColumns)

	created, err := scanProduct(q.QueryRow(ctx, query,
		newProduct.CompanyID,
		newProduct.Name,
		newProduct.Category,
		newProduct.Unit,
		newProduct.CostPrice,
		newProduct.SalePrice,
		newProduct.IsActive,
	))
	if err != nil {
		return product.Product{}, err
	}
	return created, nil
}

// GetByID implements product.ProductRepository.
func (r *productRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND company_id = $2
	`, productColumns)

	found, err := scanProduct(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, err
	}
	return found, nil
}

// GetByName implements product.ProductRepository.
func (r *productRepositoryImpl) GetByName(ctx context.Context, name string, companyID string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE LOWER(name) = LOWER($1) AND company_id = $2
	`, productColumns)

	found, err := scanProduct(q.QueryRow(ctx, query, name, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, err
	}
	return found, nil
}

// List implements product.ProductRepository.
func (r *productRepositoryImpl) List(ctx context.Context, companyID string, filter product.ProductFilter) ([]product.Product, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Update implements product.ProductRepository.
func (r *productRepositoryImpl) Update(ctx context.Context, companyID string, req product.UpdateProductRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for product update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE products SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND company_id = $%d RETURNING id", i, i+1)
	args = append(args, req.ID, companyID)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.ErrProductNotFound
		}
		return fmt.Errorf("failed to update product with id %s: %w", req.ID, err)
	}
	return nil
}

// Delete implements product.ProductRepository.
func (r *productRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM products WHERE id = $1 AND company_id = $2`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
