package service

import (
	"log/slog"

	"github.com/zeroco/company-console/internal/domain/model"
)

const (
	EmployeesPath   = "/employees"
	DepartmentsPath = "/departments"
)

// EmployeeService is the CRUD client for /employees.
type EmployeeService struct {
	*Resource[model.Employee]
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(api API, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		Resource: NewResource[model.Employee](ResourceOptions{API: api, Path: EmployeesPath, Logger: logger}),
	}
}

// DepartmentService is the CRUD client for /departments.
type DepartmentService struct {
	*Resource[model.Department]
}

// NewDepartmentService constructs a DepartmentService.
func NewDepartmentService(api API, logger *slog.Logger) *DepartmentService {
	return &DepartmentService{
		Resource: NewResource[model.Department](ResourceOptions{API: api, Path: DepartmentsPath, Logger: logger}),
	}
}
