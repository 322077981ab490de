package sale

import (
	"context"
	"io"
)

type SaleService interface {
	// ImportWorkbook reads an xlsx of sales rows, skipping malformed lines,
	// and archives the uploaded workbook.
	ImportWorkbook(ctx context.Context, file io.Reader, filename string) (ImportResult, error)
	List(ctx context.Context, filter SaleFilter) (ListSaleResponse, error)
	Delete(ctx context.Context, id string) error
	RevenueSummary(ctx context.Context, startDate, endDate string) (RevenueSummaryResponse, error)
}
