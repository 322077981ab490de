package bill

import (
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTableRequest struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

func (r *CreateTableRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Seats < 0 {
		errs = append(errs, validator.ValidationError{Field: "seats", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TableResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Seats    int    `json:"seats"`
	IsActive bool   `json:"is_active"`
	// Occupied reports whether the table currently has an open bill.
	Occupied bool `json:"occupied"`
}

type OpenBillRequest struct {
	TableID *string `json:"table_id,omitempty"`
	Note    *string `json:"note,omitempty"`
}

type AddItemRequest struct {
	BillID    string
	ProductID *string          `json:"product_id,omitempty"`
	Name      string           `json:"name"`
	Quantity  float64          `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

func (r *AddItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProductID == nil && validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required when product_id is not given"})
	}
	if r.Quantity <= 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be positive"})
	}
	if r.UnitPrice != nil && r.UnitPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CloseBillRequest struct {
	BillID        string
	PaymentMethod string `json:"payment_method"`
}

func (r *CloseBillRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.PaymentMethod, []string{"cash", "card", "transfer"}) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'cash', 'card' or 'transfer'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BillResponse struct {
	ID            string          `json:"id"`
	TableID       *string         `json:"table_id,omitempty"`
	TableName     *string         `json:"table_name,omitempty"`
	Status        string          `json:"status"`
	Items         []BillItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Note          *string         `json:"note,omitempty"`
	OpenedAt      string          `json:"opened_at"`
	ClosedAt      *string         `json:"closed_at,omitempty"`
}

type BillFilter struct {
	Status    *string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

type ListBillResponse struct {
	Data       []BillResponse `json:"data"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
