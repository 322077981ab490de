package company

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/domain/company"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
}

func NewCompanyService(db *database.DB, companyRepository company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{
		db:                db,
		CompanyRepository: companyRepository,
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

// GetMy implements company.CompanyService.
func (s *CompanyServiceImpl) GetMy(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	found, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(found), nil
}

// UpdateMy implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateMy(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if err := s.CompanyRepository.Update(ctx, companyID, req); err != nil {
		return company.CompanyResponse{}, err
	}

	updated, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return toCompanyResponse(updated), nil
}

func toCompanyResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Username: c.Username,
		Currency: c.Currency,
		Timezone: c.Timezone,
		Address:  c.Address,
		Phone:    c.Phone,
	}
}
