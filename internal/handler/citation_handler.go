package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Avi0425/Paper-Forge-AI/internal/citation"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/response"
	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

type CitationHandler struct {
	citations *service.CitationService
}

func NewCitationHandler(citations *service.CitationService) *CitationHandler {
	return &CitationHandler{citations: citations}
}

func (h *CitationHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	results, err := h.citations.Search(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"citations": results})
}

type suggestRequest struct {
	Sections map[model.Section]string `json:"sections"`
	Limit    int                      `json:"limit"`
}

func (h *CitationHandler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	suggestions, err := h.citations.Suggest(c.Request.Context(), req.Sections, req.Limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"suggestions": suggestions})
}

type formatRequest struct {
	Citation model.Citation `json:"citation"`
	Style    string         `json:"style"`
}

func (h *CitationHandler) Format(c *gin.Context) {
	var req formatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	style, err := citation.ParseStyle(req.Style)
	if err != nil {
		handleError(c, err)
		return
	}
	formatted, err := h.citations.Format(req.Citation, style)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"formatted": formatted})
}
