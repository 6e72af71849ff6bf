package entity

import (
	"context"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/id"
)

// DepartmentAware is a trait for entities that belong to a department.
// Used for composition in models like MaterialReceipt.
type DepartmentAware struct {
	// DepartmentID is the owning department for this entity
	DepartmentID id.ID `db:"department_id" json:"departmentId"`
}

// ValidateDepartment ensures a department is set.
func (d *DepartmentAware) ValidateDepartment(ctx context.Context) error {
	if id.IsNil(d.DepartmentID) {
		return apperror.NewValidation("department is required").
			WithDetail("field", "departmentId")
	}
	return nil
}

// GetDepartmentID returns the department ID (useful for interfaces).
func (d *DepartmentAware) GetDepartmentID() id.ID {
	return d.DepartmentID
}

// IDepartmentAware is an interface for any document that has a department.
type IDepartmentAware interface {
	GetDepartmentID() id.ID
	ValidateDepartment(ctx context.Context) error
}
