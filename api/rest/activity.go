package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/audit"
	"github.com/kasuganosora/memorybox/model"
	"go.uber.org/zap"
)

// ActivityHandler exposes the audit trail.
type ActivityHandler struct {
	audit  *audit.Service
	logger *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler. svc may be nil when
// auditing is disabled.
func NewActivityHandler(svc *audit.Service, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{audit: svc, logger: logger}
}

// Recent handles GET /api/activity?limit=.
func (h *ActivityHandler) Recent(c *gin.Context) {
	if h.audit == nil {
		c.JSON(http.StatusOK, gin.H{"activity": []model.ActivityLog{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rows, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": nonNil(rows)})
}
