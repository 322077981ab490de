package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/openrms/pos-backend-go/internal/domain/company"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, username, currency, timezone, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, username, currency, timezone, address, phone, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query,
		newCompany.Name,
		newCompany.Username,
		newCompany.Currency,
		newCompany.Timezone,
		newCompany.Address,
		newCompany.Phone,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Username,
		&created.Currency,
		&created.Timezone,
		&created.Address,
		&created.Phone,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, currency, timezone, address, phone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Username,
		&found.Currency,
		&found.Timezone,
		&found.Address,
		&found.Phone,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return found, nil
}

// GetByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, currency, timezone, address, phone, created_at, updated_at
		FROM companies
		WHERE username = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, username).Scan(
		&found.ID,
		&found.Name,
		&found.Username,
		&found.Currency,
		&found.Timezone,
		&found.Address,
		&found.Phone,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return found, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for company update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE companies SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, id)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company with id %s: %w", id, err)
	}
	return nil
}
