package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/openrms/pos-backend-go/internal/domain/employee"
	"github.com/openrms/pos-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
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

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode, companyID); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	newEmployee := employee.Employee{
		CompanyID:    companyID,
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Role:         req.Role,
		SalaryType:   employee.SalaryType(req.SalaryType),
		HourlyRate:   req.HourlyRate,
		FixedSalary:  decimal.Zero,
		PhoneNumber:  req.PhoneNumber,
		Note:         req.Note,
		IsActive:     true,
	}
	if req.FixedSalary != nil {
		newEmployee.FixedSalary = *req.FixedSalary
	}
	if req.StandardHours != nil {
		newEmployee.StandardHours = *req.StandardHours
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return toEmployeeResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.EmployeeRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, companyID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListEmployeeResponse{
		Data:       make([]employee.EmployeeResponse, 0, len(employees)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range employees {
		resp.Data = append(resp.Data, toEmployeeResponse(e))
	}
	return resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.Update(ctx, companyID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.EmployeeRepository.Delete(ctx, id, companyID)
}

func toEmployeeResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:            e.ID,
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Role:          e.Role,
		SalaryType:    string(e.SalaryType),
		HourlyRate:    e.HourlyRate,
		FixedSalary:   e.FixedSalary,
		StandardHours: e.StandardHours,
		PhoneNumber:   e.PhoneNumber,
		Note:          e.Note,
		IsActive:      e.IsActive,
	}
}
