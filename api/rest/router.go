package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler mounted by Register.
type Handlers struct {
	Items    *ItemHandler
	Settings *SettingsHandler
	Images   *ImageHandler
	Transfer *TransferHandler
	Activity *ActivityHandler
}

// Register mounts /health and the /api routes on r.
func Register(r gin.IRouter, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/items", h.Items.List)
	api.GET("/items/:id", h.Items.Get)
	api.POST("/items", h.Items.Create)
	api.PUT("/items/:id", h.Items.Update)
	api.DELETE("/items/:id", h.Items.Delete)
	api.GET("/devices", h.Items.Devices)
	api.GET("/radar", h.Items.Radar)
	api.GET("/search", h.Items.Search)
	api.GET("/suggestions", h.Items.Suggestions)
	api.GET("/locations", h.Items.Locations)

	api.GET("/settings", h.Settings.Get)
	api.PUT("/settings", h.Settings.Put)
	api.GET("/session", h.Settings.Session)
	api.POST("/session/visited", h.Settings.MarkVisited)

	api.POST("/images", h.Images.Upload)
	api.GET("/export", h.Transfer.Export)
	api.POST("/import", h.Transfer.Import)

	if h.Activity != nil {
		api.GET("/activity", h.Activity.Recent)
	}
}
