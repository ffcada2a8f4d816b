package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/apperrors"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/internal/services"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GetTasks handles GET /api/tasks. Filter and pagination params are
// whitelisted by the validators; anything unusable is silently dropped.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	raw := query.RawFilters{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		TaskOwner: c.Query("taskOwner"),
	}
	if tags := c.Query("tags"); tags != "" {
		raw.Tags = strings.Split(tags, ",")
	}

	filters := query.ValidateFilters(raw)
	pagination := query.ValidatePagination(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
	)

	result, err := h.taskService.ListTasks(c.Request.Context(), filters, pagination)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	items := result.Items
	if items == nil {
		items = []models.Task{}
	}
	respondPage(c, http.StatusOK, items, result.Pagination)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskService.GetTaskByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.Validation("Invalid task payload").WithDetails(err.Error()))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	respondData(c, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, apperrors.Validation("Invalid task payload").WithDetails(err.Error()))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	respondData(c, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
