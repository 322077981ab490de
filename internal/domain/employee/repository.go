package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByCode(ctx context.Context, code string, companyID string) (Employee, error)
	// FindByName does a case-insensitive full-name lookup, used when punch
	// exports carry names but no registered code.
	FindByName(ctx context.Context, name string, companyID string) (Employee, error)
	List(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, companyID string, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}
