package cashflow

import "context"

type CashflowService interface {
	Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	List(ctx context.Context, filter EntryFilter) (ListEntryResponse, error)
	Delete(ctx context.Context, id string) error
	Report(ctx context.Context, req ReportRequest) (ReportResponse, error)
	// RollupSales writes the previous day's sales revenue as an income
	// entry for every company, skipping days already rolled up.
	RollupSales(ctx context.Context) error
}
