package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/openrms/pos-backend-go/internal/domain/bill"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/shopspring/decimal"
)

type BillServiceImpl struct {
	bill.TableRepository
	bill.BillRepository
	product.ProductRepository
}

func NewBillService(
	tableRepository bill.TableRepository,
	billRepository bill.BillRepository,
	productRepository product.ProductRepository,
) bill.BillService {
	return &BillServiceImpl{
		TableRepository:   tableRepository,
		BillRepository:    billRepository,
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

// CreateTable implements bill.BillService.
func (s *BillServiceImpl) CreateTable(ctx context.Context, req bill.CreateTableRequest) (bill.TableResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.TableResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.TableResponse{}, err
	}

	tables, err := s.TableRepository.List(ctx, companyID)
	if err != nil {
		return bill.TableResponse{}, fmt.Errorf("failed to list tables: %w", err)
	}
	for _, t := range tables {
		if t.Name == req.Name {
			return bill.TableResponse{}, bill.ErrTableNameExists
		}
	}

	created, err := s.TableRepository.Create(ctx, bill.Table{
		CompanyID: companyID,
		Name:      req.Name,
		Seats:     req.Seats,
		IsActive:  true,
	})
	if err != nil {
		return bill.TableResponse{}, fmt.Errorf("failed to create table: %w", err)
	}

	return bill.TableResponse{
		ID:       created.ID,
		Name:     created.Name,
		Seats:    created.Seats,
		IsActive: created.IsActive,
	}, nil
}

// ListTables implements bill.BillService.
func (s *BillServiceImpl) ListTables(ctx context.Context) ([]bill.TableResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := s.TableRepository.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	responses := make([]bill.TableResponse, 0, len(tables))
	for _, t := range tables {
		occupied := false
		if _, err := s.BillRepository.GetOpenByTable(ctx, t.ID, companyID); err == nil {
			occupied = true
		} else if !errors.Is(err, bill.ErrBillNotFound) {
			return nil, fmt.Errorf("failed to check open bill for table: %w", err)
		}
		responses = append(responses, bill.TableResponse{
			ID:       t.ID,
			Name:     t.Name,
			Seats:    t.Seats,
			IsActive: t.IsActive,
			Occupied: occupied,
		})
	}
	return responses, nil
}

// DeleteTable implements bill.BillService. A table with an open bill cannot
// be removed.
func (s *BillServiceImpl) DeleteTable(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.BillRepository.GetOpenByTable(ctx, id, companyID); err == nil {
		return bill.ErrTableOccupied
	} else if !errors.Is(err, bill.ErrBillNotFound) {
		return fmt.Errorf("failed to check open bill for table: %w", err)
	}

	return s.TableRepository.Delete(ctx, id, companyID)
}

// OpenBill implements bill.BillService.
func (s *BillServiceImpl) OpenBill(ctx context.Context, req bill.OpenBillRequest) (bill.BillResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	if req.TableID != nil {
		if _, err := s.TableRepository.GetByID(ctx, *req.TableID, companyID); err != nil {
			return bill.BillResponse{}, err
		}
		if _, err := s.BillRepository.GetOpenByTable(ctx, *req.TableID, companyID); err == nil {
			return bill.BillResponse{}, bill.ErrTableOccupied
		} else if !errors.Is(err, bill.ErrBillNotFound) {
			return bill.BillResponse{}, fmt.Errorf("failed to check open bill for table: %w", err)
		}
	}

	created, err := s.BillRepository.Create(ctx, bill.Bill{
		CompanyID: companyID,
		TableID:   req.TableID,
		Status:    bill.BillStatusOpen,
		Items:     []bill.BillItem{},
		Total:     decimal.Zero,
		Note:      req.Note,
		OpenedAt:  time.Now(),
	})
	if err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to open bill: %w", err)
	}

	return toBillResponse(created), nil
}

// GetBill implements bill.BillService.
func (s *BillServiceImpl) GetBill(ctx context.Context, id string) (bill.BillResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	found, err := s.BillRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return bill.BillResponse{}, err
	}
	return toBillResponse(found), nil
}

// ListBills implements bill.BillService.
func (s *BillServiceImpl) ListBills(ctx context.Context, filter bill.BillFilter) (bill.ListBillResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.ListBillResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	bills, total, err := s.BillRepository.List(ctx, companyID, filter)
	if err != nil {
		return bill.ListBillResponse{}, fmt.Errorf("failed to list bills: %w", err)
	}

	resp := bill.ListBillResponse{
		Data:       make([]bill.BillResponse, 0, len(bills)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, b := range bills {
		resp.Data = append(resp.Data, toBillResponse(b))
	}
	return resp, nil
}

// AddItem implements bill.BillService. A product_id fills in name and price
// from the product registry; a free-form line carries its own.
func (s *BillServiceImpl) AddItem(ctx context.Context, req bill.AddItemRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	b, err := s.BillRepository.GetByID(ctx, req.BillID, companyID)
	if err != nil {
		return bill.BillResponse{}, err
	}
	if b.Status != bill.BillStatusOpen {
		return bill.BillResponse{}, bill.ErrBillNotOpen
	}

	item := bill.BillItem{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Quantity: req.Quantity,
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
	}
	if req.ProductID != nil {
		p, err := s.ProductRepository.GetByID(ctx, *req.ProductID, companyID)
		if err != nil {
			return bill.BillResponse{}, err
		}
		item.ProductID = &p.ID
		if item.Name == "" {
			item.Name = p.Name
		}
		if req.UnitPrice == nil {
			item.UnitPrice = p.SalePrice
		}
	}
	item.Amount = item.UnitPrice.Mul(decimal.NewFromFloat(item.Quantity))

	b.Items = append(b.Items, item)
	b.RecalculateTotal()

	if err := s.BillRepository.Update(ctx, b); err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to update bill: %w", err)
	}
	return toBillResponse(b), nil
}

// RemoveItem implements bill.BillService.
func (s *BillServiceImpl) RemoveItem(ctx context.Context, billID string, itemID string) (bill.BillResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	b, err := s.BillRepository.GetByID(ctx, billID, companyID)
	if err != nil {
		return bill.BillResponse{}, err
	}
	if b.Status != bill.BillStatusOpen {
		return bill.BillResponse{}, bill.ErrBillNotOpen
	}

	kept := b.Items[:0]
	found := false
	for _, item := range b.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return bill.BillResponse{}, bill.ErrBillItemNotFound
	}
	b.Items = kept
	b.RecalculateTotal()

	if err := s.BillRepository.Update(ctx, b); err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to update bill: %w", err)
	}
	return toBillResponse(b), nil
}

// CloseBill implements bill.BillService.
func (s *BillServiceImpl) CloseBill(ctx context.Context, req bill.CloseBillRequest) (bill.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return bill.BillResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	b, err := s.BillRepository.GetByID(ctx, req.BillID, companyID)
	if err != nil {
		return bill.BillResponse{}, err
	}
	if b.Status != bill.BillStatusOpen {
		return bill.BillResponse{}, bill.ErrBillNotOpen
	}

	now := time.Now()
	b.Status = bill.BillStatusPaid
	b.PaymentMethod = &req.PaymentMethod
	b.ClosedAt = &now

	if err := s.BillRepository.Update(ctx, b); err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to close bill: %w", err)
	}
	return toBillResponse(b), nil
}

// VoidBill implements bill.BillService.
func (s *BillServiceImpl) VoidBill(ctx context.Context, id string) (bill.BillResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return bill.BillResponse{}, err
	}

	b, err := s.BillRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return bill.BillResponse{}, err
	}
	if b.Status != bill.BillStatusOpen {
		return bill.BillResponse{}, bill.ErrBillNotOpen
	}

	now := time.Now()
	b.Status = bill.BillStatusVoid
	b.ClosedAt = &now

	if err := s.BillRepository.Update(ctx, b); err != nil {
		return bill.BillResponse{}, fmt.Errorf("failed to void bill: %w", err)
	}
	return toBillResponse(b), nil
}

func toBillResponse(b bill.Bill) bill.BillResponse {
	resp := bill.BillResponse{
		ID:            b.ID,
		TableID:       b.TableID,
		TableName:     b.TableName,
		Status:        string(b.Status),
		Items:         b.Items,
		Total:         b.Total,
		PaymentMethod: b.PaymentMethod,
		Note:          b.Note,
		OpenedAt:      b.OpenedAt.Format(time.RFC3339),
	}
	if resp.Items == nil {
		resp.Items = []bill.BillItem{}
	}
	if b.ClosedAt != nil {
		closed := b.ClosedAt.Format(time.RFC3339)
		resp.ClosedAt = &closed
	}
	return resp
}
