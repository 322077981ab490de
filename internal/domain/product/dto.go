package product

import (
	"github.com/openrms/pos-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

func (r *CreateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.CostPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "cost_price", Message: "must be non-negative"})
	}
	if r.SalePrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "sale_price", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProductRequest struct {
	ID        string
	Name      *string          `json:"name,omitempty"`
	Category  *string          `json:"category,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	CostPrice *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.CostPrice != nil && r.CostPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "cost_price", Message: "must be non-negative"})
	}
	if r.SalePrice != nil && r.SalePrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "sale_price", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	IsActive  bool            `json:"is_active"`
}

type ProductFilter struct {
	Category   *string
	ActiveOnly bool
	Page       int
	Limit      int
}

type ListProductResponse struct {
	Data       []ProductResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
