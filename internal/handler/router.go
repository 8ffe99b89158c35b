package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Projects  *ProjectHandler
	Citations *CitationHandler
	Chat      *ChatHandler
	Corpus    *CorpusHandler
	Artifacts *ArtifactHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/projects", deps.Projects.Create)
	api.GET("/projects", deps.Projects.List)
	api.GET("/projects/:id", deps.Projects.Get)
	api.DELETE("/projects/:id", deps.Projects.Delete)
	api.PUT("/projects/:id/sections/:section", deps.Projects.UpdateSection)
	api.POST("/projects/:id/analyze", deps.Projects.Analyze)
	api.GET("/projects/:id/highlights", deps.Projects.Highlights)
	api.GET("/projects/:id/report", deps.Projects.Report)
	api.GET("/projects/:id/export", deps.Projects.Export)

	api.GET("/citations/search", deps.Citations.Search)
	api.POST("/citations/suggest", deps.Citations.Suggest)
	api.POST("/citations/format", deps.Citations.Format)

	api.POST("/chat/sessions", deps.Chat.CreateSession)
	api.GET("/chat/sessions", deps.Chat.ListSessions)
	api.GET("/chat/sessions/active", deps.Chat.ActiveSession)
	api.GET("/chat/sessions/:id", deps.Chat.GetSession)
	api.PUT("/chat/sessions/:id/activate", deps.Chat.Activate)
	api.PUT("/chat/sessions/:id/rename", deps.Chat.Rename)
	api.PUT("/chat/sessions/:id/clear", deps.Chat.Clear)
	api.DELETE("/chat/sessions/:id", deps.Chat.Delete)
	api.POST("/chat/messages", deps.Chat.SendMessage)
	api.GET("/chat/generating", deps.Chat.Generating)
	api.POST("/chat/suggestions", deps.Chat.Suggestions)

	api.POST("/corpus/sources", deps.Corpus.Add)
	api.GET("/corpus/sources", deps.Corpus.List)
	api.DELETE("/corpus/sources/:id", deps.Corpus.Delete)

	api.GET("/artifacts/:key", deps.Artifacts.Get)
}
