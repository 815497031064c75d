package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go-task-api/internal/middleware"
	"go-task-api/internal/model"
	"go-task-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.PageMeta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// writeError maps service failures to the wire error shape. Anything
// unclassified is logged in full and returned as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "Unexpected server error"

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		code = apiErr.Code
		message = apiErr.Message
		if apiErr.Details != "" {
			message = message + ": " + apiErr.Details
		}
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		code = "VALIDATION"
		message = err.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "UNAUTHORIZED"
		message = "Invalid credentials"
	case errors.Is(err, model.ErrAccountDeactivated):
		status = http.StatusUnauthorized
		code = "UNAUTHORIZED"
		message = "Account deactivated"
	case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = "UNAUTHORIZED"
		message = "Authentication required"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		code = "FORBIDDEN"
		message = "Access denied"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
		message = "User not found"
	case errors.Is(err, model.ErrTaskNotFound):
		status = http.StatusNotFound
		code = "NOT_FOUND"
		message = "Task not found"
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
		code = "CONFLICT"
		message = "Email already registered"
	default:
		slog.Error("unhandled error in writeError", "path", r.URL.Path, "method", r.Method, "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Method:     r.Method,
		Message:    message,
		Code:       code,
	})
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierror.New("BAD_REQUEST", "invalid JSON body", err.Error(), http.StatusBadRequest)
	}
	return nil
}

// uuidParam reads a path parameter that must be a well-formed UUID.
func uuidParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", apierror.New("BAD_REQUEST", name+" must be a valid UUID", raw, http.StatusBadRequest)
	}
	return parsed.String(), nil
}

func currentUser(r *http.Request) (model.AuthUser, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return model.AuthUser{}, model.ErrUnauthorized
	}
	return user, nil
}
