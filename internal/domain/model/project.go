package model

import (
	"slices"
)

// Project is a company project with its assigned employees.
// Employees are referenced by id when submitting; the backend returns full records.
type Project struct {
	ID          int64      `json:"id,omitempty"`
	Name        string     `json:"name"                  validate:"required,max=100"`
	Description *string    `json:"description,omitempty"`
	StartDate   Date       `json:"startDate,omitzero"`
	EndDate     Date       `json:"endDate,omitzero"`
	Employees   []Employee `json:"employees,omitempty"`
}

// GetID implements Entity.
func (p Project) GetID() int64 { return p.ID }

// EmployeeIDs returns the sorted, de-duplicated ids of the assigned employees.
func (p Project) EmployeeIDs() []int64 {
	ids := make([]int64, 0, len(p.Employees))
	for _, e := range p.Employees {
		if e.ID > 0 {
			ids = append(ids, e.ID)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// WithEmployeeIDs returns a copy of p whose Employees are id-only references.
func (p Project) WithEmployeeIDs(ids []int64) Project {
	refs := make([]Employee, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, Employee{ID: id})
	}
	p.Employees = refs
	return p
}

// Fields returns a copy of p without employee assignments.
// Assignments travel through the dedicated relationship endpoints.
func (p Project) Fields() Project {
	p.Employees = nil
	return p
}

// AssignmentDiff reports which employees must be assigned and unassigned to move
// from current to desired. Both outputs are sorted.
func AssignmentDiff(current, desired []int64) (assign, unassign []int64) {
	have := make(map[int64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		if id <= 0 {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			assign = append(assign, id)
		}
	}
	for id := range have {
		if _, ok := want[id]; !ok {
			unassign = append(unassign, id)
		}
	}
	slices.Sort(assign)
	assign = slices.Compact(assign)
	slices.Sort(unassign)
	return assign, unassign
}
