package bootstrap

import (
	"github.com/zeroco/company-console/internal/crud"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/validation"
)

// EmployeeController returns a list controller for employees. A pageSize of
// zero uses the configured default.
func (c *Console) EmployeeController(pageSize int) *crud.Controller[model.Employee] {
	return crud.New(crud.Options[model.Employee]{
		Store:    c.Services.Employees,
		Notifier: c.Notifications,
		Config:   crud.Config[model.Employee]{Labels: crud.EmployeeLabels, PageSize: c.pageSize(pageSize), Validate: validation.Employee, Logger: c.Logger},
	})
}

// DepartmentController returns a list controller for departments.
func (c *Console) DepartmentController(pageSize int) *crud.Controller[model.Department] {
	return crud.New(crud.Options[model.Department]{
		Store:    c.Services.Departments,
		Notifier: c.Notifications,
		Config:   crud.Config[model.Department]{Labels: crud.DepartmentLabels, PageSize: c.pageSize(pageSize), Validate: validation.Department, Logger: c.Logger},
	})
}

// ProjectController returns a list controller for projects. Saving a project
// with employees also syncs its assignments.
func (c *Console) ProjectController(pageSize int) *crud.Controller[model.Project] {
	return crud.New(crud.Options[model.Project]{
		Store:    c.Services.Projects,
		Notifier: c.Notifications,
		Config:   crud.Config[model.Project]{Labels: crud.ProjectLabels, PageSize: c.pageSize(pageSize), Validate: validation.Project, Logger: c.Logger},
	})
}

// pageSize returns size when positive, else the configured default.
func (c *Console) pageSize(size int) int {
	if size > 0 {
		return size
	}
	return c.Config.UI.PageSize
}
