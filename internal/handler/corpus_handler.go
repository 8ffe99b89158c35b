package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/response"
	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

type CorpusHandler struct {
	corpus *service.CorpusService
}

func NewCorpusHandler(corpus *service.CorpusService) *CorpusHandler {
	return &CorpusHandler{corpus: corpus}
}

type addSourceRequest struct {
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (h *CorpusHandler) Add(c *gin.Context) {
	var req addSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	source, err := h.corpus.Add(c.Request.Context(), req.Description, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, source)
}

func (h *CorpusHandler) List(c *gin.Context) {
	sources, err := h.corpus.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"sources": sources})
}

func (h *CorpusHandler) Delete(c *gin.Context) {
	if err := h.corpus.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
