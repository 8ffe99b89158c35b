package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/filestore"
)

// ArtifactHandler serves previously exported documents back from the
// file store. Only stores that support Open can serve downloads; the
// s3 store is upload-only and answers 501 here.
type ArtifactHandler struct {
	store filestore.Store
}

func NewArtifactHandler(store filestore.Store) *ArtifactHandler {
	return &ArtifactHandler{store: store}
}

func (h *ArtifactHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") {
		c.Status(http.StatusBadRequest)
		return
	}
	file, err := h.store.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, filestore.ErrOpenUnsupported) {
			logutil.GetLogger(c.Request.Context()).Warn("artifact download unavailable on this store",
				zap.String("store", h.store.Type()))
			c.Status(http.StatusNotImplemented)
			return
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer file.Close()
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	_, _ = file.Seek(0, 0)
	_, _ = io.Copy(c.Writer, file)
}
