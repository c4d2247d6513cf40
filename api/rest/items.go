package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/enrich"
	"github.com/kasuganosora/memorybox/inventory"
	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/query"
	"github.com/kasuganosora/memorybox/session"
	"go.uber.org/zap"
)

// ItemHandler serves the inventory collection and the read-only views
// derived from it.
type ItemHandler struct {
	svc    *inventory.Service
	flags  *session.Flags
	sim    *enrich.Simulator
	logger *zap.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *inventory.Service, flags *session.Flags, sim *enrich.Simulator, logger *zap.Logger) *ItemHandler {
	if sim == nil {
		sim = enrich.NewSimulator(nil)
	}
	return &ItemHandler{svc: svc, flags: flags, sim: sim, logger: logger}
}

// List handles GET /api/items?category=.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if raw := c.Query("category"); raw != "" {
		cat, ok := model.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		items = query.FilterByCategory(items, cat)
	}
	c.JSON(http.StatusOK, gin.H{"items": nonNil(items)})
}

// Get handles GET /api/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(c *gin.Context) {
	var d inventory.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.svc.Add(c.Request.Context(), d)
	if err != nil {
		h.mutationFailed(c, item, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update handles PUT /api/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	var d inventory.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.svc.Edit(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		h.mutationFailed(c, item, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// mutationFailed echoes the rejected item on a quota error so the client
// keeps what the user entered.
func (h *ItemHandler) mutationFailed(c *gin.Context, item model.InventoryItem, err error) {
	if errors.Is(err, kv.ErrQuotaExceeded) {
		h.logger.Warn("storage quota exceeded", zap.String("id", item.ID))
		c.AbortWithStatusJSON(http.StatusInsufficientStorage, gin.H{
			"error": "storage full",
			"item":  item,
		})
		return
	}
	abortWithError(c, h.logger, err)
}

// Delete handles DELETE /api/items/:id. Unknown ids also answer 204.
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type deviceView struct {
	Item   model.InventoryItem `json:"item"`
	Status enrich.DeviceStatus `json:"status"`
}

// Devices handles GET /api/devices.
func (h *ItemHandler) Devices(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	tracked := query.Trackable(items)
	statuses := h.sim.Devices(tracked)
	out := make([]deviceView, len(tracked))
	for i := range tracked {
		out[i] = deviceView{Item: tracked[i], Status: statuses[i]}
	}
	c.JSON(http.StatusOK, gin.H{"devices": out})
}

// Radar handles GET /api/radar.
func (h *ItemHandler) Radar(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blips": enrich.Radar(items)})
}

// Search handles GET /api/search?q=. The query is remembered as the last
// search even when it matches nothing.
func (h *ItemHandler) Search(c *gin.Context) {
	q := c.Query("q")
	ctx := c.Request.Context()
	if err := h.flags.SetLastQuery(ctx, q); err != nil {
		h.logger.Warn("remember last query", zap.Error(err))
	}
	items, err := h.svc.List(ctx)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "items": query.Search(items, q)})
}

// Suggestions handles GET /api/suggestions?field=.
func (h *ItemHandler) Suggestions(c *gin.Context) {
	field, err := query.ParseField(c.DefaultQuery("field", string(query.FieldName)))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field, "suggestions": nonNil(query.Suggest(items, field))})
}

// Locations handles GET /api/locations.
func (h *ItemHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"locations": query.LocationOptions()})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
