package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dmoreno/tasktrack-api/internal/api/shared"
	"github.com/dmoreno/tasktrack-api/internal/domain"
	"github.com/dmoreno/tasktrack-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}

	v := validator.New()
	// futuredate rejects dates strictly before today. Registered only on the
	// create payload; edits may carry past due dates.
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		date, err := time.Parse(dateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return !date.Before(today)
	})

	return &TaskHandler{
		taskService: taskService,
		validator:   v,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, errMsg := parseTaskFilter(r)
	if errMsg != "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	result := h.taskService.List(r.Context(), filter)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskListToResponse(result.Value()))
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result := h.taskService.GetByID(r.Context(), id)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(result.Value()))
}

// GetTaskForEdit handles GET /api/tasks/{id}/edit requests.
func (h *TaskHandler) GetTaskForEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result := h.taskService.GetForEdit(r.Context(), id)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskEditToResponse(result.Value()))
}

// CreateTask handles POST /api/tasks requests.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     parseDate(req.DueDate),
	}

	result := h.taskService.Create(r.Context(), in)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(result.Value()))
}

// UpdateTask handles PUT /api/tasks/{id} requests.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, validationMessage(err))
		return
	}

	in := service.TaskUpdate{
		ID: req.ID,
		TaskInput: service.TaskInput{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			DueDate:     parseDate(req.DueDate),
		},
	}

	result := h.taskService.Update(r.Context(), id, in)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(result.Value()))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	result := h.taskService.Delete(r.Context(), id)
	if result.IsFailure() {
		shared.RespondWithError(w, r, MapFailureToStatusCode(result.Code()), result.ErrorMessage())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: result.Message()})
}

// pathID extracts the numeric task ID from the URL path, responding with a
// 400 on malformed values. Non-positive IDs pass through; the service
// rejects them uniformly.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Warn("malformed task ID in path", slog.String("value", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, service.MsgInvalidTaskID)
		return 0, false
	}
	return id, true
}

// parseTaskFilter builds the filter specification from the list query
// string. Unknown sort fields are tolerated (the engine falls back to
// creation time); unrecognized enum values are rejected outright.
func parseTaskFilter(r *http.Request) (domain.TaskFilter, string) {
	q := r.URL.Query()
	filter := domain.DefaultTaskFilter()

	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return filter, service.MsgStatusInvalid
		}
		filter.Status = &status
	}
	if raw := q.Get("priority"); raw != "" {
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			return filter, service.MsgPriorityInvalid
		}
		filter.Priority = &priority
	}

	filter.SearchTerm = q.Get("search")

	if raw := q.Get("sortBy"); raw != "" {
		filter.SortBy = raw
	}
	if raw := q.Get("sortDesc"); raw != "" {
		desc, err := strconv.ParseBool(strings.ToLower(raw))
		if err == nil {
			filter.SortDescending = desc
		}
	}
	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := q.Get("pageSize"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			filter.PageSize = size
		}
	}

	filter.Normalize()
	return filter, ""
}

// parseDate converts a validated wire date into a UTC time pointer.
// Returns nil for the empty string.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	date = date.UTC()
	return &date
}
