package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateTaskRequest is the request body for POST /events/{eventID}/tasks.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"due_date"`
	Assignee    string              `json:"assignee"`
	Priority    domain.TaskPriority `json:"priority"`
	Category    string              `json:"category"`
}

// Validate implements Validator.
func (c CreateTaskRequest) Validate() []string {
	var errs []string
	if blank(c.Title) {
		errs = append(errs, "title is required")
	}
	if c.Priority != "" && !c.Priority.Valid() {
		errs = append(errs, "priority must be low, medium or high")
	}
	return errs
}

// UpdateTaskRequest is the request body for PATCH /tasks/{taskID}.
type UpdateTaskRequest domain.TaskPatch

// Validate implements Validator.
func (u UpdateTaskRequest) Validate() []string {
	var errs []string
	if blankPtr(u.Title) {
		errs = append(errs, "title cannot be empty")
	}
	if u.Priority != nil && !u.Priority.Valid() {
		errs = append(errs, "priority must be low, medium or high")
	}
	return errs
}

// CompleteTaskRequest is the request body for POST /tasks/{taskID}/complete.
type CompleteTaskRequest struct {
	Completed bool `json:"completed"`
}

// TaskSuccessResponse is the success envelope for a single task.
type TaskSuccessResponse struct {
	Data  *domain.Task      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TaskListSuccessResponse is the success envelope for task lists.
type TaskListSuccessResponse struct {
	Data  []*domain.Task    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TaskStatsSuccessResponse is the success envelope for task stats.
type TaskStatsSuccessResponse struct {
	Data  domain.TaskStats  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TaskController handles the event checklist.
type TaskController struct {
	Logger  *slog.Logger
	Service domain.TaskService
}

// NewTaskController creates a TaskController with the given logger and service.
func NewTaskController(logger *slog.Logger, svc domain.TaskService) *TaskController {
	return &TaskController{Logger: logger, Service: svc}
}

// ListTasks godoc
// @Summary List an event's tasks
// @Description Ordered by due date with undated tasks last.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.TaskListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/tasks [get]
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	tasks, err := c.Service.ListTasks(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Add a task to an event
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateTaskRequest true "Task data"
// @Success 201 {object} controllers.TaskSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/tasks [post]
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task := &domain.Task{
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     timeOrNil(req.DueDate),
		Assignee:    req.Assignee,
		Priority:    req.Priority,
		Category:    req.Category,
	}
	if err := c.Service.CreateTask(r.Context(), actor, task); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, task)
}

// TaskStats godoc
// @Summary Task completion stats for an event
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.TaskStatsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/tasks/stats [get]
func (c *TaskController) TaskStats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	stats, err := c.Service.TaskStats(r.Context(), actor, eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskID path string true "Task ID (UUID)"
// @Param body body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} controllers.TaskSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tasks/{taskID} [patch]
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := helpers.PathUUID(w, r, "taskID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task, err := c.Service.UpdateTask(r.Context(), actor, taskID, domain.TaskPatch(req))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}

// CompleteTask godoc
// @Summary Mark a task complete or incomplete
// @Description Sets completed_at when completing and clears it when reopening.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskID path string true "Task ID (UUID)"
// @Param body body CompleteTaskRequest true "Completion flag"
// @Success 200 {object} controllers.TaskSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tasks/{taskID}/complete [post]
func (c *TaskController) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := helpers.PathUUID(w, r, "taskID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req CompleteTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task, err := c.Service.CompleteTask(r.Context(), actor, taskID, req.Completed)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param taskID path string true "Task ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /tasks/{taskID} [delete]
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := helpers.PathUUID(w, r, "taskID")
	if !ok {
		return
	}
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteTask(r.Context(), actor, taskID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, deletedResponse)
}
