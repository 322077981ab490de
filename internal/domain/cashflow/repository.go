package cashflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CashflowRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, companyID string, filter EntryFilter) ([]Entry, int64, error)
	Delete(ctx context.Context, id string, companyID string) error
	// SumByKind returns income and expense totals for the period.
	SumByKind(ctx context.Context, companyID string, startDate, endDate time.Time) (income, expense decimal.Decimal, err error)
	SumByCategory(ctx context.Context, companyID string, startDate, endDate time.Time) (map[string]decimal.Decimal, error)
	// HasRollup reports whether a rollup entry from the given source already
	// exists for the date (keeps the nightly job idempotent).
	HasRollup(ctx context.Context, companyID string, date time.Time, source Source) (bool, error)
	// CompanyIDs lists companies with any cash-flow or sales activity, for
	// the rollup job.
	CompanyIDs(ctx context.Context) ([]string, error)
}
