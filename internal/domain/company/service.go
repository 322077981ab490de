package company

import "context"

type CompanyService interface {
	GetMy(ctx context.Context) (CompanyResponse, error)
	UpdateMy(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
}
