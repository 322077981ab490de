package bill

import "context"

type BillService interface {
	// Tables
	CreateTable(ctx context.Context, req CreateTableRequest) (TableResponse, error)
	ListTables(ctx context.Context) ([]TableResponse, error)
	DeleteTable(ctx context.Context, id string) error

	// Bills
	OpenBill(ctx context.Context, req OpenBillRequest) (BillResponse, error)
	GetBill(ctx context.Context, id string) (BillResponse, error)
	ListBills(ctx context.Context, filter BillFilter) (ListBillResponse, error)
	AddItem(ctx context.Context, req AddItemRequest) (BillResponse, error)
	RemoveItem(ctx context.Context, billID string, itemID string) (BillResponse, error)
	CloseBill(ctx context.Context, req CloseBillRequest) (BillResponse, error)
	VoidBill(ctx context.Context, id string) (BillResponse, error)
}
