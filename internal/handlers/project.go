package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/dto"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string            `json:"name" binding:"required"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

// ListProjects returns all projects, or the one matching the name query
// parameter
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}
