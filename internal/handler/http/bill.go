package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/openrms/pos-backend-go/internal/domain/bill"
	"github.com/openrms/pos-backend-go/internal/handler/http/response"
)

type BillHandler interface {
	// Tables
	CreateTable(w http.ResponseWriter, r *http.Request)
	ListTables(w http.ResponseWriter, r *http.Request)
	DeleteTable(w http.ResponseWriter, r *http.Request)

	// Bills
	OpenBill(w http.ResponseWriter, r *http.Request)
	GetBill(w http.ResponseWriter, r *http.Request)
	ListBills(w http.ResponseWriter, r *http.Request)
	AddItem(w http.ResponseWriter, r *http.Request)
	RemoveItem(w http.ResponseWriter, r *http.Request)
	CloseBill(w http.ResponseWriter, r *http.Request)
	VoidBill(w http.ResponseWriter, r *http.Request)
}

type billHandlerImpl struct {
	billService bill.BillService
}

func NewBillHandler(billService bill.BillService) BillHandler {
	return &billHandlerImpl{billService: billService}
}

// ========== TABLES ==========

func (h *billHandlerImpl) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req bill.CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.billService.CreateTable(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Table created", result)
}

func (h *billHandlerImpl) ListTables(w http.ResponseWriter, r *http.Request) {
	result, err := h.billService.ListTables(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *billHandlerImpl) DeleteTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Table ID is required", nil)
		return
	}

	if err := h.billService.DeleteTable(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Table deleted", nil)
}

// ========== BILLS ==========

func (h *billHandlerImpl) OpenBill(w http.ResponseWriter, r *http.Request) {
	var req bill.OpenBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.billService.OpenBill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bill opened", result)
}

func (h *billHandlerImpl) GetBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Bill ID is required", nil)
		return
	}

	result, err := h.billService.GetBill(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *billHandlerImpl) ListBills(w http.ResponseWriter, r *http.Request) {
	filter := bill.BillFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.billService.ListBills(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

func (h *billHandlerImpl) AddItem(w http.ResponseWriter, r *http.Request) {
	var req bill.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BillID = chi.URLParam(r, "id")

	result, err := h.billService.AddItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *billHandlerImpl) RemoveItem(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	result, err := h.billService.RemoveItem(r.Context(), billID, itemID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *billHandlerImpl) CloseBill(w http.ResponseWriter, r *http.Request) {
	var req bill.CloseBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BillID = chi.URLParam(r, "id")

	result, err := h.billService.CloseBill(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bill closed", result)
}

func (h *billHandlerImpl) VoidBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Bill ID is required", nil)
		return
	}

	result, err := h.billService.VoidBill(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bill voided", result)
}
