package sale

import (
	"context"
	"testing"

	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products map[string]product.Product
}

func (s *stubProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string, companyID string) (product.Product, error) {
	return product.Product{}, product.ErrProductNotFound
}

func (s *stubProductRepo) GetByName(ctx context.Context, name string, companyID string) (product.Product, error) {
	if p, ok := s.products[name]; ok {
		return p, nil
	}
	return product.Product{}, product.ErrProductNotFound
}

func (s *stubProductRepo) List(ctx context.Context, companyID string, filter product.ProductFilter) ([]product.Product, int64, error) {
	return nil, 0, nil
}

func (s *stubProductRepo) Update(ctx context.Context, companyID string, req product.UpdateProductRequest) error {
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func newParseTestService(products map[string]product.Product) *SaleServiceImpl {
	return &SaleServiceImpl{
		ProductRepository: &stubProductRepo{products: products},
	}
}

func TestParseRowValid(t *testing.T) {
	svc := newParseTestService(nil)

	row := []string{"2026-03-02", "Nasi Goreng", "3", "25000", ""}
	record, problem := svc.parseRow(context.Background(), "company-1", row)

	require.Empty(t, problem)
	assert.Equal(t, "Nasi Goreng", record.ProductName)
	assert.Equal(t, 3.0, record.Quantity)
	assert.True(t, record.UnitPrice.Equal(decimal.NewFromInt(25000)))
	assert.True(t, record.Total.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, "2026-03-02", record.Date.Format("2006-01-02"))
	assert.Nil(t, record.ProductID)
}

func TestParseRowUsesCellTotalWhenPresent(t *testing.T) {
	svc := newParseTestService(nil)

	// Discounted line: the sheet's total wins over quantity * unit price.
	row := []string{"2026-03-02", "Es Teh", "2", "5000", "9000"}
	record, problem := svc.parseRow(context.Background(), "company-1", row)

	require.Empty(t, problem)
	assert.True(t, record.Total.Equal(decimal.NewFromInt(9000)))
}

func TestParseRowLinksRegisteredProduct(t *testing.T) {
	svc := newParseTestService(map[string]product.Product{
		"Kopi Susu": {ID: "prod-1", Name: "Kopi Susu"},
	})

	row := []string{"2026-03-02", "Kopi Susu", "1", "18000"}
	record, problem := svc.parseRow(context.Background(), "company-1", row)

	require.Empty(t, problem)
	require.NotNil(t, record.ProductID)
	assert.Equal(t, "prod-1", *record.ProductID)
}

func TestParseRowProblems(t *testing.T) {
	svc := newParseTestService(nil)

	tests := []struct {
		name string
		row  []string
	}{
		{"too few columns", []string{"2026-03-02", "Nasi Goreng"}},
		{"bad date", []string{"yesterday", "Nasi Goreng", "1", "25000"}},
		{"empty product name", []string{"2026-03-02", "  ", "1", "25000"}},
		{"zero quantity", []string{"2026-03-02", "Nasi Goreng", "0", "25000"}},
		{"negative quantity", []string{"2026-03-02", "Nasi Goreng", "-2", "25000"}},
		{"bad unit price", []string{"2026-03-02", "Nasi Goreng", "1", "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, problem := svc.parseRow(context.Background(), "company-1", tt.row)
			assert.NotEmpty(t, problem)
		})
	}
}

func TestParseSaleDateLayouts(t *testing.T) {
	for _, raw := range []string{"2026-03-02", "2026/03/02", "02-Mar-26"} {
		parsed, ok := parseSaleDate(raw)
		require.True(t, ok, raw)
		assert.Equal(t, "2026-03-02", parsed.Format("2006-01-02"))
	}

	_, ok := parseSaleDate("March 2nd")
	assert.False(t, ok)
}
