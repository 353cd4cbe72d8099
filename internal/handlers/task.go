package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/workviyo/taskboard-api/internal/dto"
	apierrors "github.com/workviyo/taskboard-api/internal/errors"
	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the tasks matching the team, owners, project, status
// and tags query parameters, ordered by prioritySort and dateSort
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Owners:       c.Query("owners"),
		Tags:         c.Query("tags"),
		Team:         c.Query("team"),
		Project:      c.Query("project"),
		Status:       c.Query("status"),
		PrioritySort: c.Query("prioritySort"),
		DateSort:     c.Query("dateSort"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name           string              `json:"name" binding:"required"`
		Project        string              `json:"project" binding:"required"`
		Team           string              `json:"team" binding:"required"`
		Owners         []string            `json:"owners" binding:"required"`
		TimeToComplete *float64            `json:"timeToComplete" binding:"required"`
		Priority       models.TaskPriority `json:"priority"`
		Status         models.TaskStatus   `json:"status"`
		Tags           []string            `json:"tags"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerIDs:       req.Owners,
		TimeToComplete: *req.TimeToComplete,
		Priority:       req.Priority,
		Status:         req.Status,
		TagIDs:         req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update. Fields present in the body replace
// the stored ones; owners and tags are replaced as whole lists.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Name           *string              `json:"name"`
		Project        *string              `json:"project"`
		Team           *string              `json:"team"`
		Owners         *[]string            `json:"owners"`
		TimeToComplete *float64             `json:"timeToComplete"`
		Priority       *models.TaskPriority `json:"priority"`
		Status         *models.TaskStatus   `json:"status"`
		Tags           *[]string            `json:"tags"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Name:           req.Name,
		ProjectID:      req.Project,
		TeamID:         req.Team,
		OwnerIDs:       req.Owners,
		TimeToComplete: req.TimeToComplete,
		Priority:       req.Priority,
		Status:         req.Status,
		TagIDs:         req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// AddOwners merges owners into a task
func (h *TaskHandler) AddOwners(c *gin.Context) {
	type AddOwnersRequest struct {
		Owners []string `json:"owners" binding:"required"`
	}

	var req AddOwnersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.AddOwners(c.Request.Context(), c.Param("id"), req.Owners)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Owners added successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Task deleted successfully",
		"deletedTask": dto.ToTaskDTO(*task),
	})
}
