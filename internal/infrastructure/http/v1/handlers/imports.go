package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/domain/imports"
	"treefnio/internal/infrastructure/http/v1/dto"
	"treefnio/pkg/csvimport"
)

// maxImportFileSize bounds uploaded sales files (10 MB).
const maxImportFileSize = 10 << 20

// ImportsHandler handles the sales file import flow.
type ImportsHandler struct {
	*BaseHandler
	service *imports.Service
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(base *BaseHandler, service *imports.Service) *ImportsHandler {
	return &ImportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Preview handles POST /imports/preview
// Expects multipart form data: "file" is the CSV upload, "mapping" is a
// JSON-encoded column mapping.
func (h *ImportsHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required"))
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.Error(c, apperror.NewValidation("file is too large"))
		return
	}

	var mapping imports.ColumnMapping
	mappingJSON := c.PostForm("mapping")
	if mappingJSON == "" {
		h.Error(c, apperror.NewValidation("mapping is required"))
		return
	}
	if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
		h.Error(c, apperror.NewValidation("invalid mapping format (json expected)"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("cannot read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportFileSize))
	if err != nil {
		h.Error(c, apperror.NewValidation("cannot read uploaded file"))
		return
	}

	table, err := csvimport.ParseBytes(data)
	if err != nil {
		h.Error(c, apperror.NewValidation(err.Error()))
		return
	}

	preview, err := h.service.Preview(ctx, table, mapping)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromImportPreview(preview, table.Headers))
}

// Commit handles POST /imports/commit
// Persists a reviewed preview as a sale batch.
func (h *ImportsHandler) Commit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportCommitRequest
	if !h.BindJSON(c, &req) {
		return
	}

	// Rebuild status counters: the client may have fixed unmatched rows
	// since the preview was generated.
	preview := &imports.Preview{Rows: req.Rows}
	for _, row := range req.Rows {
		switch row.Status {
		case imports.RowMatched:
			preview.Matched++
		case imports.RowUnmatched:
			preview.Unmatched++
		case imports.RowInvalid:
			preview.Invalid++
		}
	}

	batch, err := h.service.Commit(ctx, preview, req.BatchDate)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromSaleBatch(batch)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// RegisterRoutes wires import routes into the group.
func (h *ImportsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/preview", h.Preview)
	group.POST("/commit", h.Commit)
}
