package crud

import "strings"

// Labels name a resource in user-facing messages, e.g. Noun "Employee", Plural "employees".
type Labels struct {
	Noun   string
	Plural string
}

var (
	EmployeeLabels   = Labels{Noun: "Employee", Plural: "employees"}
	DepartmentLabels = Labels{Noun: "Department", Plural: "departments"}
	ProjectLabels    = Labels{Noun: "Project", Plural: "projects"}
)

func (l Labels) Created() string { return l.Noun + " created successfully!" }
func (l Labels) Updated() string { return l.Noun + " updated successfully!" }
func (l Labels) Deleted() string { return l.Noun + " deleted successfully!" }

func (l Labels) FetchFailed() string    { return "Failed to fetch " + l.Plural + "." }
func (l Labels) FetchOneFailed() string { return "Failed to fetch " + l.lowerNoun() + "." }
func (l Labels) SaveFailed() string     { return "Failed to save " + l.lowerNoun() + "." }
func (l Labels) DeleteFailed() string   { return "Failed to delete " + l.lowerNoun() + "." }

func (l Labels) lowerNoun() string { return strings.ToLower(l.Noun) }
