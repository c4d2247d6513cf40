package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/imaging"
	"go.uber.org/zap"
)

// ImageHandler turns uploaded photos into storable data URIs.
type ImageHandler struct {
	norm   *imaging.Normalizer
	logger *zap.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(norm *imaging.Normalizer, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{norm: norm, logger: logger}
}

// Upload handles POST /api/images with a multipart "file" field.
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > imaging.MaxInputBytes {
		abortWithError(c, h.logger, imaging.ErrTooLarge)
		return
	}
	f, err := fh.Open()
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	defer f.Close()

	uri, err := h.norm.Normalize(f)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	w, ht, err := imaging.Dimensions(uri)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": uri, "width": w, "height": ht})
}
