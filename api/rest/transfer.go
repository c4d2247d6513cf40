package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/memorybox/transfer"
	"go.uber.org/zap"
)

// maxBackupBytes bounds an uploaded backup.
const maxBackupBytes = 64 << 20

// TransferHandler serves backup download and restore.
type TransferHandler struct {
	im     *transfer.Importer
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewTransferHandler creates a new TransferHandler. CSV dates are rendered
// in loc (time.Local when nil).
func NewTransferHandler(im *transfer.Importer, loc *time.Location, logger *zap.Logger) *TransferHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TransferHandler{im: im, loc: loc, now: time.Now, logger: logger}
}

// Export handles GET /api/export?format=json|csv|txt.
func (h *TransferHandler) Export(c *gin.Context) {
	f, err := transfer.ParseFormat(c.Query("format"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	data, items, err := h.im.Dump(c.Request.Context(), f, h.loc)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data to export"})
		return
	}
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, transfer.Filename(f, h.now())))
	c.Data(http.StatusOK, f.ContentType(), data)
}

// Import handles POST /api/import. The backup is either the raw JSON body
// or a multipart "file" field.
func (h *TransferHandler) Import(c *gin.Context) {
	payload, err := h.readPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.im.Restore(c.Request.Context(), payload)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}

func (h *TransferHandler) readPayload(c *gin.Context) ([]byte, error) {
	var r io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBackupBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBackupBytes {
		return nil, fmt.Errorf("backup exceeds %d bytes", maxBackupBytes)
	}
	return data, nil
}
