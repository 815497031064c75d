package handler

import (
	"net/http"
	"strconv"
	"strings"

	"go-task-api/internal/model"
	"go-task-api/internal/service"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, meta, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, users, &meta)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	caller, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var payload model.UpdateUserRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Update(r.Context(), userID, payload, caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, user, nil)
}

func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Deactivate(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deactivated": true}, nil)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

func parsePagination(r *http.Request) (int, int, error) {
	page := model.DefaultPage
	limit := model.DefaultLimit

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, badQueryParam("page", "must be a positive integer")
		}
		page = v
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > model.MaxLimit {
			return 0, 0, badQueryParam("limit", "must be an integer between 1 and 100")
		}
		limit = v
	}

	return page, limit, nil
}
