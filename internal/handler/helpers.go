package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/middleware"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.RequestIDFrom(c.Request.Context())),
			zap.Error(err))
	}
	if stage, ok := appErr.AsStageError(err); ok {
		response.Error(c, http.StatusBadGateway, "analysis stage "+stage.Stage+" failed")
		return
	}
	switch {
	case err == nil:
		return
	case appErr.IsInvalid(err):
		response.Error(c, http.StatusBadRequest, "invalid request")
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not found")
	case appErr.IsCollaborator(err):
		response.Error(c, http.StatusBadGateway, "collaborator failure")
	case appErr.IsPersistence(err):
		response.Error(c, http.StatusInternalServerError, "persistence failure")
	default:
		response.Error(c, http.StatusInternalServerError, "internal error")
	}
}
