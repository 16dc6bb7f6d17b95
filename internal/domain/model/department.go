package model

// Department is an organisational unit as exposed by /api/departments.
type Department struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"               validate:"required,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// GetID implements Entity.
func (d Department) GetID() int64 { return d.ID }
