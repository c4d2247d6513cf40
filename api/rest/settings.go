package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/model"
	"github.com/kasuganosora/memorybox/session"
	"github.com/kasuganosora/memorybox/settings"
	"go.uber.org/zap"
)

// SettingsHandler serves user preferences and the session flags.
type SettingsHandler struct {
	store  *settings.Store
	flags  *session.Flags
	logger *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store *settings.Store, flags *session.Flags, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, flags: flags, logger: logger}
}

// Get handles GET /api/settings. It never fails; defaults fill any gap.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.store.Get(c.Request.Context())})
}

// Put handles PUT /api/settings. Keys missing from the body take their
// default value.
func (h *SettingsHandler) Put(c *gin.Context) {
	var st model.Settings
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.Set(c.Request.Context(), st); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": st})
}

// Session handles GET /api/session.
func (h *SettingsHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()
	first, err := h.flags.IsFirstTime(ctx)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	last, err := h.flags.LastQuery(ctx)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"firstTime": first, "lastQuery": last})
}

// MarkVisited handles POST /api/session/visited.
func (h *SettingsHandler) MarkVisited(c *gin.Context) {
	if err := h.flags.MarkVisited(c.Request.Context()); err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"firstTime": false})
}
