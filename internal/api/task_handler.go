package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/api/middleware"
	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/service"
	"github.com/tasknest/tasknest-api/internal/store"
)

// TaskHandler handles the /tasks endpoints. All routes require an
// authenticated owner; task ids arrive in the request body, not the
// URL, and mutations on a missing or unowned id answer 200 with a JSON
// null body rather than 404.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.taskService.List(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(
		r.Context(), userID, req.Title, req.DueDate, domain.Recurrence(req.Recurrence))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Toggle handles PUT /tasks, flipping the done flag of the task named in
// the body. Completing a recurring task also inserts its next
// occurrence; the response carries the updated task itself.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ToggleTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskID, err := uuid.Parse(req.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	result, err := h.taskService.SetDone(r.Context(), userID, taskID, *req.Done)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if result.Task == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, nil)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(result.Task))
}

// Patch handles PATCH /tasks, applying a partial update to the task
// named in the body. An explicit null dueDate clears the deadline; an
// omitted one leaves it untouched.
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req PatchTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskID, err := uuid.Parse(req.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	update := store.TaskUpdate{Title: req.Title}
	if req.DueDate.Set {
		if req.DueDate.Valid {
			due := req.DueDate.Time
			update.DueDate = &due
		} else {
			update.ClearDueDate = true
		}
	}
	if req.Recurrence != nil {
		rule := domain.Recurrence(*req.Recurrence)
		update.Recurrence = &rule
	}

	task, err := h.taskService.UpdateFields(r.Context(), userID, taskID, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if task == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, nil)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks. Missing and unowned ids succeed
// silently.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DeleteTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	taskID, err := uuid.Parse(req.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
