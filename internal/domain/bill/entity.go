package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

type Table struct {
	ID        string
	CompanyID string
	Name      string
	Seats     int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BillStatus enum
type BillStatus string

const (
	BillStatusOpen BillStatus = "open"
	BillStatusPaid BillStatus = "paid"
	BillStatusVoid BillStatus = "void"
)

// BillItem is one line on a bill; items are embedded in the bill row.
type BillItem struct {
	ID        string          `json:"id"`
	ProductID *string         `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
}

type Bill struct {
	ID            string
	CompanyID     string
	TableID       *string
	TableName     *string
	Status        BillStatus
	Items         []BillItem
	Total         decimal.Decimal
	PaymentMethod *string
	Note          *string
	OpenedAt      time.Time
	ClosedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecalculateTotal re-derives Total from the bill's items.
func (b *Bill) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	b.Total = total
}
