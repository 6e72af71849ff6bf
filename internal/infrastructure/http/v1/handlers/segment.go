package handlers

import (
	"treefnio/internal/domain/catalogs/segment"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// SegmentHTTPHandler is a type alias over the generic catalog handler.
type SegmentHTTPHandler = CatalogHandler[
	*segment.Segment,
	dto.CreateSegmentRequest,
	dto.UpdateSegmentRequest,
]

// NewSegmentHandler creates a configured generic handler for production segments.
func NewSegmentHandler(
	base *BaseHandler,
	service *segment.Service,
) *SegmentHTTPHandler {
	config := CatalogHandlerConfig[
		*segment.Segment,
		dto.CreateSegmentRequest,
		dto.UpdateSegmentRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "segment",

		MapCreateDTO: func(req dto.CreateSegmentRequest) *segment.Segment {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSegmentRequest, existing *segment.Segment) *segment.Segment {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *segment.Segment) any {
			return dto.FromSegment(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
