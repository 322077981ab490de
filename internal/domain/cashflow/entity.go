package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind enum
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Source enum: where a cash-flow entry came from.
type Source string

const (
	SourceManual Source = "manual"
	// SourceSales entries are written by the nightly rollup job from the
	// previous day's imported sales.
	SourceSales   Source = "sales"
	SourcePayroll Source = "payroll"
)

type Entry struct {
	ID        string
	CompanyID string
	Date      time.Time
	Kind      Kind
	Category  string
	Amount    decimal.Decimal
	Note      *string
	Source    Source
	CreatedAt time.Time
}
