package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/imaging"
	"github.com/kasuganosora/memorybox/inventory"
	"github.com/kasuganosora/memorybox/kv"
	"github.com/kasuganosora/memorybox/query"
	"github.com/kasuganosora/memorybox/settings"
	"github.com/kasuganosora/memorybox/transfer"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, inventory.ErrInvalidItem),
		errors.Is(err, imaging.ErrDecode),
		errors.Is(err, transfer.ErrInvalidFormat),
		errors.Is(err, transfer.ErrUnknownFormat),
		errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, query.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, inventory.ErrVetoed):
		return http.StatusForbidden
	case errors.Is(err, imaging.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, kv.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the JSON error body for err. Internal errors are
// logged and hidden from the client.
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
