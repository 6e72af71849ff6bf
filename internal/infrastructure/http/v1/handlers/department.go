package handlers

import (
	"treefnio/internal/domain/catalogs/department"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// DepartmentHTTPHandler is a type alias over the generic catalog handler.
type DepartmentHTTPHandler = CatalogHandler[
	*department.Department,
	dto.CreateDepartmentRequest,
	dto.UpdateDepartmentRequest,
]

// NewDepartmentHandler creates a configured generic handler for departments.
func NewDepartmentHandler(
	base *BaseHandler,
	service *department.Service,
) *DepartmentHTTPHandler {
	config := CatalogHandlerConfig[
		*department.Department,
		dto.CreateDepartmentRequest,
		dto.UpdateDepartmentRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "department",

		MapCreateDTO: func(req dto.CreateDepartmentRequest) *department.Department {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateDepartmentRequest, existing *department.Department) *department.Department {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *department.Department) any {
			return dto.FromDepartment(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
