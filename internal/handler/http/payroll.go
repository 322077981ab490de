package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/openrms/pos-backend-go/internal/domain/payroll"
	"github.com/openrms/pos-backend-go/internal/domain/timesheet"
	"github.com/openrms/pos-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Settings
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)

	// Import
	ImportTimesheet(w http.ResponseWriter, r *http.Request)

	// Sheets
	ListSheets(w http.ResponseWriter, r *http.Request)
	GetSheet(w http.ResponseWriter, r *http.Request)
	FinalizeSheet(w http.ResponseWriter, r *http.Request)
	DeleteSheet(w http.ResponseWriter, r *http.Request)

	// Entries
	AddEntry(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)

	// Shifts
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	// Exports
	ExportSheet(w http.ResponseWriter, r *http.Request)
	RenderPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SETTINGS ==========

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== IMPORT ==========

func (h *payrollHandlerImpl) ImportTimesheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := timesheet.ImportRequest{
		Title:     r.FormValue("title"),
		StartDate: r.FormValue("start_date"),
		EndDate:   r.FormValue("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Timesheet file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.payrollService.ImportTimesheet(r.Context(), req, file, fileHeader.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet imported", result)
}

// ========== SHEETS ==========

func (h *payrollHandlerImpl) ListSheets(w http.ResponseWriter, r *http.Request) {
	var filter payroll.SheetFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.payrollService.ListSheets(r.Context(), filter)
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

func (h *payrollHandlerImpl) GetSheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	result, err := h.payrollService.GetSheet(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) FinalizeSheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	result, err := h.payrollService.FinalizeSheet(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll sheet finalized", result)
}

func (h *payrollHandlerImpl) DeleteSheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteSheet(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll sheet deleted", nil)
}

// ========== ENTRIES ==========

func (h *payrollHandlerImpl) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SheetID = chi.URLParam(r, "id")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.AddEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll entry added", result)
}

func (h *payrollHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SheetID = chi.URLParam(r, "id")
	req.EntryID = chi.URLParam(r, "entryID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")

	if err := h.payrollService.DeleteEntry(r.Context(), sheetID, entryID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entry deleted", nil)
}

// ========== SHIFTS ==========

func (h *payrollHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SheetID = chi.URLParam(r, "id")
	req.EntryID = chi.URLParam(r, "entryID")
	req.ShiftID = chi.URLParam(r, "shiftID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")
	shiftID := chi.URLParam(r, "shiftID")

	result, err := h.payrollService.DeleteShift(r.Context(), sheetID, entryID, shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== EXPORTS ==========

func (h *payrollHandlerImpl) ExportSheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	filename, data, err := h.payrollService.ExportSheetXLSX(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}

func (h *payrollHandlerImpl) RenderPayslip(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")

	filename, data, err := h.payrollService.RenderPayslipPDF(r.Context(), sheetID, entryID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/pdf", filename, data)
}
