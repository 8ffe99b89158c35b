package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/response"
	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type createSessionRequest struct {
	Title string `json:"title"`
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	session, err := h.chat.CreateSession(c.Request.Context(), req.Title)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, session)
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.chat.ListSessions(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"sessions": sessions})
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chat.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, session)
}

func (h *ChatHandler) ActiveSession(c *gin.Context) {
	session, err := h.chat.ActiveSession(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"session": session})
}

func (h *ChatHandler) Activate(c *gin.Context) {
	if err := h.chat.SetActive(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type renameSessionRequest struct {
	Title string `json:"title"`
}

func (h *ChatHandler) Rename(c *gin.Context) {
	var req renameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.chat.RenameSession(c.Request.Context(), c.Param("id"), req.Title); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ChatHandler) Clear(c *gin.Context) {
	if err := h.chat.ClearSession(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	if err := h.chat.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type sendMessageRequest struct {
	Content      string `json:"content"`
	PaperContext string `json:"paper_context"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	session, err := h.chat.SendMessage(c.Request.Context(), req.Content, req.PaperContext)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, session)
}

func (h *ChatHandler) Generating(c *gin.Context) {
	response.Success(c, gin.H{"generating": h.chat.IsGenerating()})
}

type suggestionsRequest struct {
	Sections map[model.Section]string `json:"sections"`
}

func (h *ChatHandler) Suggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	response.Success(c, gin.H{"suggestions": h.chat.Suggestions(req.Sections)})
}
