package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/metrics"
	"github.com/akylbekov/task-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	ListTasks(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, input usecase.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string          `json:"title"       binding:"required,max=256"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"      binding:"omitempty,oneof=pending in_progress completed"`
	Priority    domain.Priority `json:"priority"    binding:"omitempty,oneof=low medium high"`
}

type updateTaskRequest struct {
	Title       *string          `json:"title"       binding:"omitempty,max=256"`
	Description *string          `json:"description"`
	Status      *domain.Status   `json:"status"      binding:"omitempty,oneof=pending in_progress completed"`
	Priority    *domain.Priority `json:"priority"    binding:"omitempty,oneof=low medium high"`
}

type listTasksQuery struct {
	Status   domain.Status   `form:"status"   binding:"omitempty,oneof=pending in_progress completed"`
	Priority domain.Priority `form:"priority" binding:"omitempty,oneof=low medium high"`
	Search   string          `form:"search"`
}

type taskResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyTitle})
			return
		}
		h.logger.Error("create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.TaskMutationsTotal.WithLabelValues("create").Inc()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    toTaskResponse(task),
	})
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), usecase.ListTasksInput{
		UserID:   c.GetString("userID"),
		Status:   q.Status,
		Priority: q.Priority,
		Search:   q.Search,
	})
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.taskUsecase.GetByID(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.Error("get task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": toTaskResponse(task)})
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), usecase.UpdateTaskInput{
		TaskID:      taskID,
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNoFieldsToUpdate})
		case errors.Is(err, domain.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmptyTitle})
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
		default:
			h.logger.Error("update task", "task_id", taskID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    toTaskResponse(task),
	})
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(c.Request.Context(), taskID, c.GetString("userID")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
			return
		}
		h.logger.Error("delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
