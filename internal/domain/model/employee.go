package model

import "strings"

// Entity is implemented by every backend-owned resource the console manages.
type Entity interface {
	GetID() int64
}

// Employee is a company employee as exposed by /api/employees.
type Employee struct {
	ID          int64    `json:"id,omitempty"`
	FirstName   string   `json:"firstName"             validate:"required,max=50"`
	LastName    string   `json:"lastName"              validate:"required,max=50"`
	Email       string   `json:"email"                 validate:"required,email,max=100"`
	PhoneNumber *string  `json:"phoneNumber,omitempty" validate:"omitempty,max=20"`
	HireDate    Date     `json:"hireDate,omitzero"     validate:"required"`
	JobTitle    string   `json:"jobTitle"              validate:"required,max=100"`
	Salary      *float64 `json:"salary,omitempty"      validate:"omitempty,gte=0"`
}

// GetID implements Entity.
func (e Employee) GetID() int64 { return e.ID }

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
