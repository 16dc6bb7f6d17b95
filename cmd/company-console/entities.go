package main

import (
	"github.com/spf13/cobra"
	"github.com/zeroco/company-console/internal/bootstrap"
	"github.com/zeroco/company-console/internal/crud"
	"github.com/zeroco/company-console/internal/domain/model"
	"github.com/zeroco/company-console/internal/navigation"
)

func employeesCommand() resourceCommand[model.Employee] {
	return resourceCommand[model.Employee]{
		use:        "employees",
		labels:     crud.EmployeeLabels,
		route:      navigation.Employees,
		controller: (*bootstrap.Console).EmployeeController,
		fetcher: func(c *bootstrap.Console) getter[model.Employee] {
			return c.Services.Employees
		},
		newForm: func() form[model.Employee] { return &employeeForm{} },
		header:  []string{"ID", "NAME", "EMAIL", "JOB TITLE", "HIRE DATE", "SALARY"},
		row: func(e model.Employee) []string {
			return []string{formatID(e.ID), e.FullName(), e.Email, e.JobTitle, dash(e.HireDate.String()), dash(formatSalary(e.Salary))}
		},
		detail: func(e model.Employee) [][]string {
			return fieldRows(
				"ID", formatID(e.ID),
				"First name", e.FirstName,
				"Last name", e.LastName,
				"Email", e.Email,
				"Phone", deref(e.PhoneNumber),
				"Hire date", e.HireDate.String(),
				"Job title", e.JobTitle,
				"Salary", formatSalary(e.Salary),
			)
		},
	}
}

type employeeForm struct {
	firstName string
	lastName  string
	email     string
	phone     string
	hireDate  string
	jobTitle  string
	salary    float64
}

func (f *employeeForm) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.firstName, "first-name", "", "First name")
	fs.StringVar(&f.lastName, "last-name", "", "Last name")
	fs.StringVar(&f.email, "email", "", "Email address")
	fs.StringVar(&f.phone, "phone", "", "Phone number (empty clears it)")
	fs.StringVar(&f.hireDate, "hire-date", "", "Hire date, YYYY-MM-DD")
	fs.StringVar(&f.jobTitle, "job-title", "", "Job title")
	fs.Float64Var(&f.salary, "salary", 0, "Salary")
}

func (f *employeeForm) apply(cmd *cobra.Command, e model.Employee) (model.Employee, error) {
	fs := cmd.Flags()
	if fs.Changed("first-name") {
		e.FirstName = f.firstName
	}
	if fs.Changed("last-name") {
		e.LastName = f.lastName
	}
	if fs.Changed("email") {
		e.Email = f.email
	}
	if fs.Changed("phone") {
		e.PhoneNumber = optional(f.phone)
	}
	if err := dateFlag(cmd, "hire-date", f.hireDate, &e.HireDate); err != nil {
		return e, err
	}
	if fs.Changed("job-title") {
		e.JobTitle = f.jobTitle
	}
	if fs.Changed("salary") {
		salary := f.salary
		e.Salary = &salary
	}
	return e, nil
}

func departmentsCommand() resourceCommand[model.Department] {
	return resourceCommand[model.Department]{
		use:        "departments",
		labels:     crud.DepartmentLabels,
		route:      navigation.Departments,
		controller: (*bootstrap.Console).DepartmentController,
		fetcher: func(c *bootstrap.Console) getter[model.Department] {
			return c.Services.Departments
		},
		newForm: func() form[model.Department] { return &departmentForm{} },
		header:  []string{"ID", "NAME", "LOCATION"},
		row: func(d model.Department) []string {
			return []string{formatID(d.ID), d.Name, dash(deref(d.Location))}
		},
		detail: func(d model.Department) [][]string {
			return fieldRows("ID", formatID(d.ID), "Name", d.Name, "Location", deref(d.Location))
		},
	}
}

type departmentForm struct {
	name     string
	location string
}

func (f *departmentForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Department name")
	cmd.Flags().StringVar(&f.location, "location", "", "Location (empty clears it)")
}

func (f *departmentForm) apply(cmd *cobra.Command, d model.Department) (model.Department, error) {
	if cmd.Flags().Changed("name") {
		d.Name = f.name
	}
	if cmd.Flags().Changed("location") {
		d.Location = optional(f.location)
	}
	return d, nil
}

func projectsCommand() resourceCommand[model.Project] {
	return resourceCommand[model.Project]{
		use:        "projects",
		labels:     crud.ProjectLabels,
		route:      navigation.Projects,
		controller: (*bootstrap.Console).ProjectController,
		fetcher: func(c *bootstrap.Console) getter[model.Project] {
			return c.Services.Projects
		},
		newForm: func() form[model.Project] { return &projectForm{} },
		header:  []string{"ID", "NAME", "START", "END", "EMPLOYEES"},
		row: func(p model.Project) []string {
			return []string{formatID(p.ID), p.Name, dash(p.StartDate.String()), dash(p.EndDate.String()), dash(formatIDs(p.EmployeeIDs()))}
		},
		detail: projectDetail,
	}
}

func projectDetail(p model.Project) [][]string {
	rows := fieldRows(
		"ID", formatID(p.ID),
		"Name", p.Name,
		"Description", deref(p.Description),
		"Start date", p.StartDate.String(),
		"End date", p.EndDate.String(),
	)
	if len(p.Employees) == 0 {
		return append(rows, []string{"Employees", "-"})
	}
	for i, e := range p.Employees {
		label := ""
		if i == 0 {
			label = "Employees"
		}
		rows = append(rows, []string{label, formatID(e.ID) + " " + e.FullName()})
	}
	return rows
}

// projectForm leaves assignments untouched unless --employees is given.
type projectForm struct {
	name        string
	description string
	startDate   string
	endDate     string
	employees   []int64
}

func (f *projectForm) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Project name")
	fs.StringVar(&f.description, "description", "", "Description (empty clears it)")
	fs.StringVar(&f.startDate, "start-date", "", "Start date, YYYY-MM-DD")
	fs.StringVar(&f.endDate, "end-date", "", "End date, YYYY-MM-DD")
	fs.Int64SliceVar(&f.employees, "employees", nil, "Assigned employee ids, comma separated; replaces the current assignments")
}

func (f *projectForm) apply(cmd *cobra.Command, p model.Project) (model.Project, error) {
	fs := cmd.Flags()
	p = p.Fields()
	if fs.Changed("name") {
		p.Name = f.name
	}
	if fs.Changed("description") {
		p.Description = optional(f.description)
	}
	if err := dateFlag(cmd, "start-date", f.startDate, &p.StartDate); err != nil {
		return p, err
	}
	if err := dateFlag(cmd, "end-date", f.endDate, &p.EndDate); err != nil {
		return p, err
	}
	if fs.Changed("employees") {
		p = p.WithEmployeeIDs(f.employees)
	}
	return p, nil
}
