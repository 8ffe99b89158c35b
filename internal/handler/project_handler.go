package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/pkg/response"
	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

type ProjectHandler struct {
	projects   *service.ProjectService
	workflow   *service.WorkflowService
	plagiarism *service.PlagiarismService
	export     *service.ExportService
}

func NewProjectHandler(projects *service.ProjectService, workflow *service.WorkflowService, plagiarism *service.PlagiarismService, export *service.ExportService) *ProjectHandler {
	return &ProjectHandler{
		projects:   projects,
		workflow:   workflow,
		plagiarism: plagiarism,
		export:     export,
	}
}

type createProjectRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	project, err := h.projects.Create(c.Request.Context(), req.Title, req.Author, req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	limit, _ := strconv.ParseUint(c.Query("limit"), 10, 32)
	projects, err := h.projects.List(c.Request.Context(), c.Query("query"), uint(limit))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"projects": projects})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

type updateSectionRequest struct {
	Text string `json:"text"`
}

func (h *ProjectHandler) UpdateSection(c *gin.Context) {
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request")
		return
	}
	project, err := h.projects.UpdateSection(c.Request.Context(), c.Param("id"), c.Param("section"), req.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Analyze(c *gin.Context) {
	project, err := h.workflow.AnalyzeProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Highlights(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if project.Similarity == nil {
		handleError(c, appErr.ErrNotFound)
		return
	}
	highlights := h.plagiarism.Project(project.Sections, project.Similarity.Matches)
	response.Success(c, gin.H{"highlights": highlights})
}

func (h *ProjectHandler) Report(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if project.Similarity == nil {
		handleError(c, appErr.ErrNotFound)
		return
	}
	if c.Query("format") == "html" {
		html, err := h.plagiarism.ReportHTML(project.Similarity)
		if err != nil {
			handleError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}
	response.Success(c, gin.H{"report": h.plagiarism.Report(project.Similarity)})
}

func (h *ProjectHandler) Export(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatMarkdown)))
	key, err := h.export.Export(c.Request.Context(), project, format)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"key": key})
}
