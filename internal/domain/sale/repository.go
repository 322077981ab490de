package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SaleRepository interface {
	BulkCreate(ctx context.Context, sales []Sale) error
	List(ctx context.Context, companyID string, filter SaleFilter) ([]Sale, int64, error)
	Delete(ctx context.Context, id string, companyID string) error
	DailyRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) ([]DailyRevenue, error)
	TotalRevenue(ctx context.Context, companyID string, startDate, endDate time.Time) (decimal.Decimal, error)
}
