package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
)

type ProductServiceImpl struct {
	db *database.DB
	product.ProductRepository
}

func NewProductService(db *database.DB, productRepository product.ProductRepository) product.ProductService {
	return &ProductServiceImpl{
		db:                db,
		ProductRepository: productRepository,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// Create implements product.ProductService.
func (s *ProductServiceImpl) Create(ctx context.Context, req product.CreateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return product.ProductResponse{}, err
	}

	if _, err := s.ProductRepository.GetByName(ctx, req.Name, companyID); err == nil {
		return product.ProductResponse{}, product.ErrProductNameExists
	} else if !errors.Is(err, product.ErrProductNotFound) {
		return product.ProductResponse{}, fmt.Errorf("failed to check product name: %w", err)
	}

	created, err := s.ProductRepository.Create(ctx, product.Product{
		CompanyID: companyID,
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		CostPrice: req.CostPrice,
		SalePrice: req.SalePrice,
		IsActive:  true,
	})
	if err != nil {
		return product.ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductResponse(created), nil
}

// Get implements product.ProductService.
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (product.ProductResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return product.ProductResponse{}, err
	}

	found, err := s.ProductRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return product.ProductResponse{}, err
	}
	return toProductResponse(found), nil
}

// List implements product.ProductService.
func (s *ProductServiceImpl) List(ctx context.Context, filter product.ProductFilter) (product.ListProductResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return product.ListProductResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	products, total, err := s.ProductRepository.List(ctx, companyID, filter)
	if err != nil {
		return product.ListProductResponse{}, fmt.Errorf("failed to list products: %w", err)
	}

	resp := product.ListProductResponse{
		Data:       make([]product.ProductResponse, 0, len(products)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, p := range products {
		resp.Data = append(resp.Data, toProductResponse(p))
	}
	return resp, nil
}

// Update implements product.ProductService.
func (s *ProductServiceImpl) Update(ctx context.Context, req product.UpdateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return product.ProductResponse{}, err
	}

	if err := s.ProductRepository.Update(ctx, companyID, req); err != nil {
		return product.ProductResponse{}, err
	}

	updated, err := s.ProductRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return product.ProductResponse{}, err
	}
	return toProductResponse(updated), nil
}

// Delete implements product.ProductService.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.ProductRepository.Delete(ctx, id, companyID)
}

func toProductResponse(p product.Product) product.ProductResponse {
	return product.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Unit:      p.Unit,
		CostPrice: p.CostPrice,
		SalePrice: p.SalePrice,
		IsActive:  p.IsActive,
	}
}
