package product

import "context"

type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	Get(ctx context.Context, id string) (ProductResponse, error)
	List(ctx context.Context, filter ProductFilter) (ListProductResponse, error)
	Update(ctx context.Context, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id string) error
}
