package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go-task-api/internal/model"
	"go-task-api/internal/service"
	"go-task-api/pkg/apierror"
)

type TaskHandler struct {
	service *service.TaskService
}

func NewTaskHandler(service *service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.CreateTaskRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), payload, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, task, nil)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria, err := ParseTaskCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), criteria, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, page.Tasks, &page.Meta)
}

func (h *TaskHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := h.service.Statistics(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, stats, nil)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.service.Get(r.Context(), taskID, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, task, nil)
}

// Update serves both PATCH and PUT with partial-update semantics.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.UpdateTaskRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.service.Update(r.Context(), taskID, payload.Patch(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, task, nil)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), taskID, caller); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

// ParseTaskCriteria builds the listing criteria from query parameters,
// rejecting out-of-range values instead of silently clamping them.
func ParseTaskCriteria(query url.Values) (model.TaskCriteria, error) {
	criteria := model.DefaultTaskCriteria()

	if status := strings.TrimSpace(query.Get("status")); status != "" {
		if !model.ValidStatus(status) {
			return model.TaskCriteria{}, badQueryParam("status", "must be one of todo, in_progress, done")
		}
		criteria.Status = status
	}

	if priority := strings.TrimSpace(query.Get("priority")); priority != "" {
		if !model.ValidPriority(priority) {
			return model.TaskCriteria{}, badQueryParam("priority", "must be one of low, medium, high")
		}
		criteria.Priority = priority
	}

	criteria.Search = strings.TrimSpace(query.Get("search"))

	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return model.TaskCriteria{}, badQueryParam("page", "must be a positive integer")
		}
		criteria.Page = v
	}

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > model.MaxLimit {
			return model.TaskCriteria{}, badQueryParam("limit", "must be an integer between 1 and 100")
		}
		criteria.Limit = v
	}

	if sortBy := strings.TrimSpace(query.Get("sort_by")); sortBy != "" {
		if !model.ValidSortField(sortBy) {
			return model.TaskCriteria{}, badQueryParam("sort_by", "must be one of created_at, updated_at, due_date, priority")
		}
		criteria.SortBy = sortBy
	}

	if sortDir := strings.ToLower(strings.TrimSpace(query.Get("sort_dir"))); sortDir != "" {
		if sortDir != model.SortAsc && sortDir != model.SortDesc {
			return model.TaskCriteria{}, badQueryParam("sort_dir", "must be asc or desc")
		}
		criteria.SortDir = sortDir
	}

	return criteria, nil
}

func badQueryParam(name string, reason string) error {
	return apierror.New("BAD_REQUEST", name+" "+reason, name, http.StatusBadRequest)
}
