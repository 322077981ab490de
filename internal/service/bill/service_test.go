package bill

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/openrms/pos-backend-go/internal/domain/bill"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

func authedContext(t *testing.T) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type memTableRepo struct {
	tables map[string]bill.Table
}

func (m *memTableRepo) Create(ctx context.Context, t bill.Table) (bill.Table, error) {
	t.ID = uuid.NewString()
	m.tables[t.ID] = t
	return t, nil
}

func (m *memTableRepo) GetByID(ctx context.Context, id string, companyID string) (bill.Table, error) {
	t, ok := m.tables[id]
	if !ok || t.CompanyID != companyID {
		return bill.Table{}, bill.ErrTableNotFound
	}
	return t, nil
}

func (m *memTableRepo) List(ctx context.Context, companyID string) ([]bill.Table, error) {
	var out []bill.Table
	for _, t := range m.tables {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTableRepo) Delete(ctx context.Context, id string, companyID string) error {
	delete(m.tables, id)
	return nil
}

type memBillRepo struct {
	bills map[string]bill.Bill
}

func (m *memBillRepo) Create(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	b.ID = uuid.NewString()
	m.bills[b.ID] = b
	return b, nil
}

func (m *memBillRepo) GetByID(ctx context.Context, id string, companyID string) (bill.Bill, error) {
	b, ok := m.bills[id]
	if !ok || b.CompanyID != companyID {
		return bill.Bill{}, bill.ErrBillNotFound
	}
	return b, nil
}

func (m *memBillRepo) GetOpenByTable(ctx context.Context, tableID string, companyID string) (bill.Bill, error) {
	for _, b := range m.bills {
		if b.CompanyID == companyID && b.TableID != nil && *b.TableID == tableID && b.Status == bill.BillStatusOpen {
			return b, nil
		}
	}
	return bill.Bill{}, bill.ErrBillNotFound
}

func (m *memBillRepo) List(ctx context.Context, companyID string, filter bill.BillFilter) ([]bill.Bill, int64, error) {
	var out []bill.Bill
	for _, b := range m.bills {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memBillRepo) Update(ctx context.Context, b bill.Bill) error {
	if _, ok := m.bills[b.ID]; !ok {
		return bill.ErrBillNotFound
	}
	m.bills[b.ID] = b
	return nil
}

type memProductRepo struct {
	products map[string]product.Product
}

func (m *memProductRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *memProductRepo) GetByID(ctx context.Context, id string, companyID string) (product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

func (m *memProductRepo) GetByName(ctx context.Context, name string, companyID string) (product.Product, error) {
	return product.Product{}, product.ErrProductNotFound
}

func (m *memProductRepo) List(ctx context.Context, companyID string, filter product.ProductFilter) ([]product.Product, int64, error) {
	return nil, 0, nil
}

func (m *memProductRepo) Update(ctx context.Context, companyID string, req product.UpdateProductRequest) error {
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

func newTestService(products map[string]product.Product) bill.BillService {
	return NewBillService(
		&memTableRepo{tables: map[string]bill.Table{}},
		&memBillRepo{bills: map[string]bill.Bill{}},
		&memProductRepo{products: products},
	)
}

func TestBillLifecycle(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(map[string]product.Product{
		"prod-1": {ID: "prod-1", Name: "Kopi Susu", SalePrice: decimal.NewFromInt(18000)},
	})

	table, err := svc.CreateTable(ctx, bill.CreateTableRequest{Name: "T1", Seats: 4})
	require.NoError(t, err)

	opened, err := svc.OpenBill(ctx, bill.OpenBillRequest{TableID: &table.ID})
	require.NoError(t, err)
	assert.Equal(t, "open", opened.Status)
	assert.True(t, opened.Total.IsZero())

	productID := "prod-1"
	withItem, err := svc.AddItem(ctx, bill.AddItemRequest{
		BillID:    opened.ID,
		ProductID: &productID,
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, withItem.Items, 1)
	assert.Equal(t, "Kopi Susu", withItem.Items[0].Name)
	assert.True(t, withItem.Total.Equal(decimal.NewFromInt(36000)))

	price := decimal.NewFromInt(5000)
	withTwo, err := svc.AddItem(ctx, bill.AddItemRequest{
		BillID:    opened.ID,
		Name:      "Kerupuk",
		Quantity:  1,
		UnitPrice: &price,
	})
	require.NoError(t, err)
	require.Len(t, withTwo.Items, 2)
	assert.True(t, withTwo.Total.Equal(decimal.NewFromInt(41000)))

	afterRemove, err := svc.RemoveItem(ctx, opened.ID, withTwo.Items[1].ID)
	require.NoError(t, err)
	require.Len(t, afterRemove.Items, 1)
	assert.True(t, afterRemove.Total.Equal(decimal.NewFromInt(36000)))

	closed, err := svc.CloseBill(ctx, bill.CloseBillRequest{BillID: opened.ID, PaymentMethod: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "paid", closed.Status)
	require.NotNil(t, closed.PaymentMethod)
	assert.Equal(t, "cash", *closed.PaymentMethod)
	require.NotNil(t, closed.ClosedAt)
}

func TestOpenBillOccupiedTable(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(nil)

	table, err := svc.CreateTable(ctx, bill.CreateTableRequest{Name: "T1", Seats: 2})
	require.NoError(t, err)

	_, err = svc.OpenBill(ctx, bill.OpenBillRequest{TableID: &table.ID})
	require.NoError(t, err)

	_, err = svc.OpenBill(ctx, bill.OpenBillRequest{TableID: &table.ID})
	assert.ErrorIs(t, err, bill.ErrTableOccupied)
}

func TestAddItemToClosedBill(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(nil)

	opened, err := svc.OpenBill(ctx, bill.OpenBillRequest{})
	require.NoError(t, err)

	price := decimal.NewFromInt(10000)
	_, err = svc.AddItem(ctx, bill.AddItemRequest{BillID: opened.ID, Name: "Teh", Quantity: 1, UnitPrice: &price})
	require.NoError(t, err)

	_, err = svc.CloseBill(ctx, bill.CloseBillRequest{BillID: opened.ID, PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, bill.AddItemRequest{BillID: opened.ID, Name: "Teh", Quantity: 1, UnitPrice: &price})
	assert.ErrorIs(t, err, bill.ErrBillNotOpen)
}

func TestVoidBill(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(nil)

	opened, err := svc.OpenBill(ctx, bill.OpenBillRequest{})
	require.NoError(t, err)

	voided, err := svc.VoidBill(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, "void", voided.Status)

	_, err = svc.VoidBill(ctx, opened.ID)
	assert.ErrorIs(t, err, bill.ErrBillNotOpen)
}

func TestDeleteTableWithOpenBill(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(nil)

	table, err := svc.CreateTable(ctx, bill.CreateTableRequest{Name: "T9", Seats: 2})
	require.NoError(t, err)

	_, err = svc.OpenBill(ctx, bill.OpenBillRequest{TableID: &table.ID})
	require.NoError(t, err)

	err = svc.DeleteTable(ctx, table.ID)
	assert.ErrorIs(t, err, bill.ErrTableOccupied)
}

func TestCreateTableDuplicateName(t *testing.T) {
	ctx := authedContext(t)
	svc := newTestService(nil)

	_, err := svc.CreateTable(ctx, bill.CreateTableRequest{Name: "T1", Seats: 2})
	require.NoError(t, err)

	_, err = svc.CreateTable(ctx, bill.CreateTableRequest{Name: "T1", Seats: 4})
	assert.ErrorIs(t, err, bill.ErrTableNameExists)
}
