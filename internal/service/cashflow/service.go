package cashflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/domain/cashflow"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/domain/sale"
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
)

type CashflowServiceImpl struct {
	cashflow.CashflowRepository
	saleRepository    sale.SaleRepository
	payrollRepository payroll.PayrollRepository
}

func NewCashflowService(
	cashflowRepository cashflow.CashflowRepository,
	saleRepository sale.SaleRepository,
	payrollRepository payroll.PayrollRepository,
) cashflow.CashflowService {
	return &CashflowServiceImpl{
		CashflowRepository: cashflowRepository,
		saleRepository:     saleRepository,
		payrollRepository:  payrollRepository,
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

// Create implements cashflow.CashflowService.
func (s *CashflowServiceImpl) Create(ctx context.Context, req cashflow.CreateEntryRequest) (cashflow.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return cashflow.EntryResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return cashflow.EntryResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.CashflowRepository.Create(ctx, cashflow.Entry{
		CompanyID: companyID,
		Date:      date,
		Kind:      cashflow.Kind(req.Kind),
		Category:  req.Category,
		Amount:    req.Amount,
		Note:      req.Note,
		Source:    cashflow.SourceManual,
	})
	if err != nil {
		return cashflow.EntryResponse{}, fmt.Errorf("failed to create cash flow entry: %w", err)
	}
	return toEntryResponse(created), nil
}

// List implements cashflow.CashflowService.
func (s *CashflowServiceImpl) List(ctx context.Context, filter cashflow.EntryFilter) (cashflow.ListEntryResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return cashflow.ListEntryResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	entries, total, err := s.CashflowRepository.List(ctx, companyID, filter)
	if err != nil {
		return cashflow.ListEntryResponse{}, fmt.Errorf("failed to list cash flow entries: %w", err)
	}

	resp := cashflow.ListEntryResponse{
		Data:       make([]cashflow.EntryResponse, 0, len(entries)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range entries {
		resp.Data = append(resp.Data, toEntryResponse(e))
	}
	return resp, nil
}

// Delete implements cashflow.CashflowService.
func (s *CashflowServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.CashflowRepository.Delete(ctx, id, companyID)
}

// Report implements cashflow.CashflowService. Alongside the ledger totals it
// reports the period's imported sales revenue and finalized payroll cost so
// the two books can be compared.
func (s *CashflowServiceImpl) Report(ctx context.Context, req cashflow.ReportRequest) (cashflow.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return cashflow.ReportResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return cashflow.ReportResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	income, expense, err := s.CashflowRepository.SumByKind(ctx, companyID, start, end)
	if err != nil {
		return cashflow.ReportResponse{}, fmt.Errorf("failed to sum cash flow: %w", err)
	}
	byCategory, err := s.CashflowRepository.SumByCategory(ctx, companyID, start, end)
	if err != nil {
		return cashflow.ReportResponse{}, fmt.Errorf("failed to sum cash flow by category: %w", err)
	}
	salesRevenue, err := s.saleRepository.TotalRevenue(ctx, companyID, start, end)
	if err != nil {
		return cashflow.ReportResponse{}, fmt.Errorf("failed to sum sales revenue: %w", err)
	}
	payrollCost, err := s.payrollRepository.TotalSalaryForPeriod(ctx, companyID, start, end)
	if err != nil {
		return cashflow.ReportResponse{}, fmt.Errorf("failed to sum payroll cost: %w", err)
	}

	return cashflow.ReportResponse{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalIncome:  income,
		TotalExpense: expense,
		Net:          income.Sub(expense),
		SalesRevenue: salesRevenue,
		PayrollCost:  payrollCost,
		ByCategory:   byCategory,
	}, nil
}

// RollupSales implements cashflow.CashflowService. It runs without request
// claims, iterating every company directly.
func (s *CashflowServiceImpl) RollupSales(ctx context.Context) error {
	yesterday := time.Now().AddDate(0, 0, -1)
	day := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	companyIDs, err := s.CashflowRepository.CompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for rollup: %w", err)
	}

	for _, companyID := range companyIDs {
		done, err := s.CashflowRepository.HasRollup(ctx, companyID, day, cashflow.SourceSales)
		if err != nil {
			return fmt.Errorf("failed to check rollup state: %w", err)
		}
		if done {
			continue
		}

		revenue, err := s.saleRepository.TotalRevenue(ctx, companyID, day, day)
		if err != nil {
			return fmt.Errorf("failed to sum sales for rollup: %w", err)
		}
		if revenue.IsZero() {
			continue
		}

		if _, err := s.CashflowRepository.Create(ctx, cashflow.Entry{
			CompanyID: companyID,
			Date:      day,
			Kind:      cashflow.KindIncome,
			Category:  "sales",
			Amount:    revenue,
			Source:    cashflow.SourceSales,
		}); err != nil {
			return fmt.Errorf("failed to write rollup entry: %w", err)
		}
		slog.Info("sales rollup recorded", "company_id", companyID, "date", day.Format("2006-01-02"), "amount", revenue.String())
	}
	return nil
}

func toEntryResponse(e cashflow.Entry) cashflow.EntryResponse {
	return cashflow.EntryResponse{
		ID:       e.ID,
		Date:     e.Date.Format("2006-01-02"),
		Kind:     string(e.Kind),
		Category: e.Category,
		Amount:   e.Amount,
		Note:     e.Note,
		Source:   string(e.Source),
	}
}
