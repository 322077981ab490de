package sale

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/domain/product"
	"github.com/openrms/pos-backend-go/internal/domain/sale"
	"github.com/openrms/pos-backend-go/internal/pkg/excel"
	"github.com/openrms/pos-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
)

type SaleServiceImpl struct {
	sale.SaleRepository
	product.ProductRepository
	fileStorage storage.FileStorage
}

func NewSaleService(
	saleRepository sale.SaleRepository,
	productRepository product.ProductRepository,
	fileStorage storage.FileStorage,
) sale.SaleService {
	return &SaleServiceImpl{
		SaleRepository:    saleRepository,
		ProductRepository: productRepository,
		fileStorage:       fileStorage,
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

// Workbook date cells arrive as strings in one of these layouts depending on
// how the sheet was produced.
var saleDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"02-Jan-06",
}

// ImportWorkbook implements sale.SaleService. Rows are [date, product,
// quantity, unitPrice, total]; the first row is a header. Malformed rows are
// skipped and reported, the workbook itself is archived.
func (s *SaleServiceImpl) ImportWorkbook(ctx context.Context, file io.Reader, filename string) (sale.ImportResult, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return sale.ImportResult{}, err
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return sale.ImportResult{}, fmt.Errorf("failed to read workbook: %w", err)
	}

	rows, err := excel.ReadRows(bytes.NewReader(raw))
	if err != nil {
		return sale.ImportResult{}, fmt.Errorf("failed to open workbook: %w", err)
	}

	archivePath := fmt.Sprintf("sales/%s/%d-%s", companyID, time.Now().Unix(), filename)
	var sourceFile *string
	if path, err := s.fileStorage.Upload(ctx, bytes.NewReader(raw), archivePath,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err == nil {
		sourceFile = &path
	} else {
		slog.Warn("failed to archive sales workbook", "path", archivePath, "error", err)
	}

	var result sale.ImportResult
	var sales []sale.Sale
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		parsed, problem := s.parseRow(ctx, companyID, row)
		if problem != "" {
			result.Skipped++
			result.RowProblems = append(result.RowProblems, fmt.Sprintf("row %d: %s", i+1, problem))
			continue
		}
		parsed.CompanyID = companyID
		parsed.SourceFile = sourceFile
		sales = append(sales, parsed)
	}

	if len(sales) == 0 {
		return result, sale.ErrNoSalesRows
	}

	if err := s.SaleRepository.BulkCreate(ctx, sales); err != nil {
		return sale.ImportResult{}, fmt.Errorf("failed to store sales: %w", err)
	}
	result.Imported = len(sales)
	return result, nil
}

func (s *SaleServiceImpl) parseRow(ctx context.Context, companyID string, row []string) (sale.Sale, string) {
	if len(row) < 4 {
		return sale.Sale{}, "too few columns"
	}

	date, ok := parseSaleDate(strings.TrimSpace(row[0]))
	if !ok {
		return sale.Sale{}, fmt.Sprintf("unparseable date %q", row[0])
	}

	name := strings.TrimSpace(row[1])
	if name == "" {
		return sale.Sale{}, "empty product name"
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil || quantity <= 0 {
		return sale.Sale{}, fmt.Sprintf("invalid quantity %q", row[2])
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(row[3]))
	if err != nil {
		return sale.Sale{}, fmt.Sprintf("invalid unit price %q", row[3])
	}

	total := unitPrice.Mul(decimal.NewFromFloat(quantity))
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		if cellTotal, err := decimal.NewFromString(strings.TrimSpace(row[4])); err == nil {
			total = cellTotal
		}
	}

	record := sale.Sale{
		Date:        date,
		ProductName: name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       total,
	}

	// Link to the product registry when the name matches; imports still work
	// for products that were never registered.
	if matched, err := s.ProductRepository.GetByName(ctx, name, companyID); err == nil {
		record.ProductID = &matched.ID
	}

	return record, ""
}

func parseSaleDate(s string) (time.Time, bool) {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// List implements sale.SaleService.
func (s *SaleServiceImpl) List(ctx context.Context, filter sale.SaleFilter) (sale.ListSaleResponse, error) {
	if err := filter.Validate(); err != nil {
		return sale.ListSaleResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return sale.ListSaleResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	sales, total, err := s.SaleRepository.List(ctx, companyID, filter)
	if err != nil {
		return sale.ListSaleResponse{}, fmt.Errorf("failed to list sales: %w", err)
	}

	resp := sale.ListSaleResponse{
		Data:       make([]sale.SaleResponse, 0, len(sales)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, record := range sales {
		resp.Data = append(resp.Data, sale.SaleResponse{
			ID:          record.ID,
			Date:        record.Date.Format("2006-01-02"),
			ProductID:   record.ProductID,
			ProductName: record.ProductName,
			Quantity:    record.Quantity,
			UnitPrice:   record.UnitPrice,
			Total:       record.Total,
		})
	}
	return resp, nil
}

// Delete implements sale.SaleService.
func (s *SaleServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.SaleRepository.Delete(ctx, id, companyID)
}

// RevenueSummary implements sale.SaleService.
func (s *SaleServiceImpl) RevenueSummary(ctx context.Context, startDate, endDate string) (sale.RevenueSummaryResponse, error) {
	filter := sale.SaleFilter{StartDate: startDate, EndDate: endDate}
	if err := filter.Validate(); err != nil {
		return sale.RevenueSummaryResponse{}, err
	}
	if startDate == "" || endDate == "" {
		return sale.RevenueSummaryResponse{}, errors.New("start_date and end_date are required")
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return sale.RevenueSummaryResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", startDate)
	end, _ := time.Parse("2006-01-02", endDate)

	daily, err := s.SaleRepository.DailyRevenue(ctx, companyID, start, end)
	if err != nil {
		return sale.RevenueSummaryResponse{}, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	resp := sale.RevenueSummaryResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Total:     decimal.Zero,
		Daily:     make([]sale.DailyRevenueRecord, 0, len(daily)),
	}
	for _, day := range daily {
		resp.Total = resp.Total.Add(day.Total)
		resp.Daily = append(resp.Daily, sale.DailyRevenueRecord{
			Date:  day.Date.Format("2006-01-02"),
			Total: day.Total,
		})
	}
	return resp, nil
}
