package bill

import "context"

type TableRepository interface {
	Create(ctx context.Context, t Table) (Table, error)
	GetByID(ctx context.Context, id string, companyID string) (Table, error)
	List(ctx context.Context, companyID string) ([]Table, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type BillRepository interface {
	Create(ctx context.Context, b Bill) (Bill, error)
	GetByID(ctx context.Context, id string, companyID string) (Bill, error)
	GetOpenByTable(ctx context.Context, tableID string, companyID string) (Bill, error)
	List(ctx context.Context, companyID string, filter BillFilter) ([]Bill, int64, error)
	Update(ctx context.Context, b Bill) error
}
