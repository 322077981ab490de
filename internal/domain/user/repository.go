package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider string, providerID string) (User, error)
	UpdateCompany(ctx context.Context, userID string, companyID string, role Role) error
}
