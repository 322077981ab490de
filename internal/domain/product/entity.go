package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string
	CompanyID string
	Name      string
	Category  string
	Unit      string // serving, kg, bottle, ...
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
