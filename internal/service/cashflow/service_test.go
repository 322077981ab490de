package cashflow

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/openrms/pos-backend-go/internal/domain/cashflow"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/domain/sale"
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

type memCashflowRepo struct {
	entries map[string]cashflow.Entry
}

func newMemCashflowRepo() *memCashflowRepo {
	return &memCashflowRepo{entries: make(map[string]cashflow.Entry)}
}

func (m *memCashflowRepo) Create(ctx context.Context, e cashflow.Entry) (cashflow.Entry, error) {
	e.ID = uuid.NewString()
	m.entries[e.ID] = e
	return e, nil
}

func (m *memCashflowRepo) List(ctx context.Context, companyID string, filter cashflow.EntryFilter) ([]cashflow.Entry, int64, error) {
	var out []cashflow.Entry
	for _, e := range m.entries {
		if e.CompanyID == companyID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memCashflowRepo) Delete(ctx context.Context, id string, companyID string) error {
	e, ok := m.entries[id]
	if !ok || e.CompanyID != companyID {
		return cashflow.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memCashflowRepo) SumByKind(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero
	for _, e := range m.entries {
		if e.CompanyID != companyID || e.Date.Before(startDate) || e.Date.After(endDate) {
			continue
		}
		if e.Kind == cashflow.KindIncome {
			income = income.Add(e.Amount)
		} else {
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense, nil
}

func (m *memCashflowRepo) SumByCategory(ctx context.Context, companyID string, startDate, endDate time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, e := range m.entries {
		if e.CompanyID != companyID || e.Date.Before(startDate) || e.Date.After(endDate) {
			continue
		}
		out[e.Category] = out[e.Category].Add(e.Amount)
	}
	return out, nil
}

func (m *memCashflowRepo) HasRollup(ctx context.Context, companyID string, date time.Time, source cashflow.Source) (bool, error) {
	for _, e := range m.entries {
		if e.CompanyID == companyID && e.Source == source && e.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCashflowRepo) CompanyIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, e := range m.entries {
		if !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			out = append(out, e.CompanyID)
		}
	}
	return out, nil
}

// stubSaleRepo serves a fixed per-company revenue figure.
type stubSaleRepo struct {
	revenue map[string]decimal.Decimal
}

func (s *stubSaleRepo) BulkCreate(ctx context.Context, sales []sale.Sale) error { return nil }

func (s *stubSaleRepo) List(ctx context.Context, companyID string, filter sale.SaleFilter) ([]sale.Sale, int64, error) {
	return nil, 0, nil
}

func (s *stubSaleRepo) Delete(ctx context.Context, id string, companyID string) error { return nil }

func (s *stubSaleRepo) DailyRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) ([]sale.DailyRevenue, error) {
	return nil, nil
}

func (s *stubSaleRepo) TotalRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	return s.revenue[companyID], nil
}

// stubPayrollRepo serves only the aggregate used by reporting.
type stubPayrollRepo struct {
	totalSalary decimal.Decimal
}

func (s *stubPayrollRepo) GetSettings(ctx context.Context, companyID string) (payroll.Settings, error) {
	return payroll.Settings{}, nil
}

func (s *stubPayrollRepo) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	return settings, nil
}

func (s *stubPayrollRepo) CreateSheet(ctx context.Context, sheet payroll.Sheet) (payroll.Sheet, error) {
	return sheet, nil
}

func (s *stubPayrollRepo) GetSheetByID(ctx context.Context, id string, companyID string) (payroll.Sheet, error) {
	return payroll.Sheet{}, payroll.ErrSheetNotFound
}

func (s *stubPayrollRepo) ListSheets(ctx context.Context, companyID string, filter payroll.SheetFilter) ([]payroll.Sheet, int64, error) {
	return nil, 0, nil
}

func (s *stubPayrollRepo) UpdateSheetStatus(ctx context.Context, id string, companyID string, status payroll.SheetStatus) error {
	return nil
}

func (s *stubPayrollRepo) DeleteSheet(ctx context.Context, id string, companyID string) error {
	return nil
}

func (s *stubPayrollRepo) CreateEntry(ctx context.Context, entry payroll.Entry, companyID string) (payroll.Entry, error) {
	return entry, nil
}

func (s *stubPayrollRepo) GetEntryByID(ctx context.Context, id string, sheetID string, companyID string) (payroll.Entry, error) {
	return payroll.Entry{}, payroll.ErrEntryNotFound
}

func (s *stubPayrollRepo) UpdateEntry(ctx context.Context, entry payroll.Entry, companyID string) error {
	return nil
}

func (s *stubPayrollRepo) DeleteEntry(ctx context.Context, id string, sheetID string, companyID string) error {
	return nil
}

func (s *stubPayrollRepo) TotalSalaryForPeriod(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error) {
	return s.totalSalary, nil
}

func newTestService(repo *memCashflowRepo, saleRepo *stubSaleRepo, payrollRepo *stubPayrollRepo) cashflow.CashflowService {
	if saleRepo == nil {
		saleRepo = &stubSaleRepo{revenue: map[string]decimal.Decimal{}}
	}
	if payrollRepo == nil {
		payrollRepo = &stubPayrollRepo{totalSalary: decimal.Zero}
	}
	return NewCashflowService(repo, saleRepo, payrollRepo)
}

func TestReportTotals(t *testing.T) {
	ctx := authedContext(t)
	repo := newMemCashflowRepo()
	svc := newTestService(repo,
		&stubSaleRepo{revenue: map[string]decimal.Decimal{testCompanyID: decimal.NewFromInt(500000)}},
		&stubPayrollRepo{totalSalary: decimal.NewFromInt(320000)},
	)

	note := "rent march"
	for _, req := range []cashflow.CreateEntryRequest{
		{Date: "2026-03-01", Kind: "income", Category: "sales", Amount: decimal.NewFromInt(500000)},
		{Date: "2026-03-05", Kind: "expense", Category: "rent", Amount: decimal.NewFromInt(150000), Note: &note},
		{Date: "2026-03-10", Kind: "expense", Category: "supplies", Amount: decimal.NewFromInt(30000)},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx, cashflow.ReportRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"})
	require.NoError(t, err)

	assert.True(t, report.TotalIncome.Equal(decimal.NewFromInt(500000)), "income %s", report.TotalIncome)
	assert.True(t, report.TotalExpense.Equal(decimal.NewFromInt(180000)), "expense %s", report.TotalExpense)
	assert.True(t, report.Net.Equal(decimal.NewFromInt(320000)), "net %s", report.Net)
	assert.True(t, report.SalesRevenue.Equal(decimal.NewFromInt(500000)))
	assert.True(t, report.PayrollCost.Equal(decimal.NewFromInt(320000)))
	assert.True(t, report.ByCategory["rent"].Equal(decimal.NewFromInt(150000)))
}

func TestReportExcludesEntriesOutsidePeriod(t *testing.T) {
	ctx := authedContext(t)
	repo := newMemCashflowRepo()
	svc := newTestService(repo, nil, nil)

	for _, req := range []cashflow.CreateEntryRequest{
		{Date: "2026-02-28", Kind: "expense", Category: "rent", Amount: decimal.NewFromInt(100000)},
		{Date: "2026-03-15", Kind: "expense", Category: "rent", Amount: decimal.NewFromInt(150000)},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	report, err := svc.Report(ctx, cashflow.ReportRequest{StartDate: "2026-03-01", EndDate: "2026-03-31"})
	require.NoError(t, err)

	assert.True(t, report.TotalExpense.Equal(decimal.NewFromInt(150000)), "expense %s", report.TotalExpense)
}

func TestReportRejectsInvertedPeriod(t *testing.T) {
	svc := newTestService(newMemCashflowRepo(), nil, nil)

	_, err := svc.Report(authedContext(t), cashflow.ReportRequest{StartDate: "2026-03-31", EndDate: "2026-03-01"})
	assert.Error(t, err)
}

func TestRollupSalesRecordsYesterday(t *testing.T) {
	ctx := context.Background()
	repo := newMemCashflowRepo()

	// Seed an unrelated manual entry so the company shows up for the rollup.
	repo.entries["seed"] = cashflow.Entry{
		ID:        "seed",
		CompanyID: testCompanyID,
		Date:      time.Now().AddDate(0, 0, -10),
		Kind:      cashflow.KindExpense,
		Category:  "rent",
		Amount:    decimal.NewFromInt(100000),
		Source:    cashflow.SourceManual,
	}

	svc := newTestService(repo,
		&stubSaleRepo{revenue: map[string]decimal.Decimal{testCompanyID: decimal.NewFromInt(250000)}},
		nil,
	)

	require.NoError(t, svc.RollupSales(ctx))

	var rollups []cashflow.Entry
	for _, e := range repo.entries {
		if e.Source == cashflow.SourceSales {
			rollups = append(rollups, e)
		}
	}
	require.Len(t, rollups, 1)
	assert.Equal(t, cashflow.KindIncome, rollups[0].Kind)
	assert.Equal(t, "sales", rollups[0].Category)
	assert.True(t, rollups[0].Amount.Equal(decimal.NewFromInt(250000)))

	yesterday := time.Now().AddDate(0, 0, -1)
	want := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	assert.True(t, rollups[0].Date.Equal(want))
}

func TestRollupSalesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemCashflowRepo()
	repo.entries["seed"] = cashflow.Entry{
		ID:        "seed",
		CompanyID: testCompanyID,
		Date:      time.Now().AddDate(0, 0, -10),
		Kind:      cashflow.KindExpense,
		Category:  "rent",
		Amount:    decimal.NewFromInt(100000),
		Source:    cashflow.SourceManual,
	}

	svc := newTestService(repo,
		&stubSaleRepo{revenue: map[string]decimal.Decimal{testCompanyID: decimal.NewFromInt(250000)}},
		nil,
	)

	require.NoError(t, svc.RollupSales(ctx))
	require.NoError(t, svc.RollupSales(ctx))

	count := 0
	for _, e := range repo.entries {
		if e.Source == cashflow.SourceSales {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRollupSalesSkipsZeroRevenue(t *testing.T) {
	ctx := context.Background()
	repo := newMemCashflowRepo()
	repo.entries["seed"] = cashflow.Entry{
		ID:        "seed",
		CompanyID: testCompanyID,
		Date:      time.Now().AddDate(0, 0, -10),
		Kind:      cashflow.KindExpense,
		Category:  "rent",
		Amount:    decimal.NewFromInt(100000),
		Source:    cashflow.SourceManual,
	}

	svc := newTestService(repo, &stubSaleRepo{revenue: map[string]decimal.Decimal{}}, nil)

	require.NoError(t, svc.RollupSales(ctx))

	for _, e := range repo.entries {
		assert.NotEqual(t, cashflow.SourceSales, e.Source)
	}
}
