package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is one imported sales row: a product sold on a day.
type Sale struct {
	ID          string
	CompanyID   string
	Date        time.Time
	ProductID   *string
	ProductName string
	Quantity    float64
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	SourceFile  *string
	CreatedAt   time.Time
}

// DailyRevenue is one day's summed sales.
type DailyRevenue struct {
	Date  time.Time
	Total decimal.Decimal
}
