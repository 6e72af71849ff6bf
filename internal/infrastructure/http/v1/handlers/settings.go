package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"treefnio/internal/core/apperror"
	"treefnio/internal/domain/settings"
	"treefnio/internal/infrastructure/http/v1/dto"
)

// SettingsHandler handles application settings endpoints, including the
// real-time change stream.
type SettingsHandler struct {
	*BaseHandler
	service *settings.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /settings
func (h *SettingsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.service.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(items))
}

// Get handles GET /settings/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	setting, err := h.service.Get(ctx, c.Param("key"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSetting(setting))
}

// Set handles PUT /settings/:key
func (h *SettingsHandler) Set(c *gin.Context) {
	ctx := c.Request.Context()

	key := c.Param("key")
	if key == "" {
		h.Error(c, apperror.NewValidation("key is required"))
		return
	}

	var req dto.SetSettingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	setting := &settings.Setting{
		Key:       key,
		Value:     req.Value,
		UpdatedBy: h.GetUserID(c),
	}

	if err := h.service.Set(ctx, setting); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSetting(setting))
}

// Delete handles DELETE /settings/:key
func (h *SettingsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.Delete(ctx, c.Param("key")); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Watch handles GET /settings/watch
// Streams change events as server-sent events until the client disconnects.
func (h *SettingsHandler) Watch(c *gin.Context) {
	ctx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := make(chan settings.ChangeEvent, 16)
	go func() {
		_ = h.service.Watch(ctx, func(ev settings.ChangeEvent) {
			select {
			case events <- ev:
			case <-ctx.Done():
			}
		})
	}()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			c.SSEvent("change", ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// RegisterRoutes wires settings routes into the group.
func (h *SettingsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/watch", h.Watch)
	group.GET("/:key", h.Get)
	group.PUT("/:key", h.Set)
	group.DELETE("/:key", h.Delete)
}
