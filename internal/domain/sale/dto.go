package sale

import (
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SaleResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	ProductID   *string         `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    float64         `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

type SaleFilter struct {
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

func (f *SaleFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListSaleResponse struct {
	Data       []SaleResponse `json:"data"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// ImportResult reports what happened to each workbook row.
type ImportResult struct {
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	RowProblems []string `json:"row_problems,omitempty"`
}

type RevenueSummaryResponse struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Total     decimal.Decimal      `json:"total"`
	Daily     []DailyRevenueRecord `json:"daily"`
}

type DailyRevenueRecord struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}
