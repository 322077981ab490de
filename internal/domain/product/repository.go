package product

import "context"

type ProductRepository interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id string, companyID string) (Product, error)
	GetByName(ctx context.Context, name string, companyID string) (Product, error)
	List(ctx context.Context, companyID string, filter ProductFilter) ([]Product, int64, error)
	Update(ctx context.Context, companyID string, req UpdateProductRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
