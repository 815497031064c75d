package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	// bcrypt truncates beyond 72 bytes
	if len(r.Password) > 72 {
		return fmt.Errorf("%w: password must be at most 72 characters", ErrInvalidInput)
	}
	if r.FirstName == "" || utf8.RuneCountInString(r.FirstName) > 100 {
		return fmt.Errorf("%w: first_name is required and must be at most 100 characters", ErrInvalidInput)
	}
	if r.LastName == "" || utf8.RuneCountInString(r.LastName) > 100 {
		return fmt.Errorf("%w: last_name is required and must be at most 100 characters", ErrInvalidInput)
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)

	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	return nil
}

type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
	Active    *bool   `json:"active"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		if _, err := mail.ParseAddress(trimmed); err != nil {
			return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
		}
		r.Email = &trimmed
	}
	if r.FirstName != nil {
		trimmed := strings.TrimSpace(*r.FirstName)
		if trimmed == "" || utf8.RuneCountInString(trimmed) > 100 {
			return fmt.Errorf("%w: first_name must be between 1 and 100 characters", ErrInvalidInput)
		}
		r.FirstName = &trimmed
	}
	if r.LastName != nil {
		trimmed := strings.TrimSpace(*r.LastName)
		if trimmed == "" || utf8.RuneCountInString(trimmed) > 100 {
			return fmt.Errorf("%w: last_name must be between 1 and 100 characters", ErrInvalidInput)
		}
		r.LastName = &trimmed
	}
	if r.Role != nil && *r.Role != RoleAdmin && *r.Role != RoleUser {
		return fmt.Errorf("%w: role must be one of admin, user", ErrInvalidInput)
	}

	return nil
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)

	if r.Title == "" || utf8.RuneCountInString(r.Title) > 200 {
		return fmt.Errorf("%w: title is required and must be at most 200 characters", ErrInvalidInput)
	}
	if utf8.RuneCountInString(r.Description) > 2000 {
		return fmt.Errorf("%w: description must be at most 2000 characters", ErrInvalidInput)
	}
	if r.Status == "" {
		r.Status = StatusTodo
	}
	if !ValidStatus(r.Status) {
		return fmt.Errorf("%w: status must be one of todo, in_progress, done", ErrInvalidInput)
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if !ValidPriority(r.Priority) {
		return fmt.Errorf("%w: priority must be one of low, medium, high", ErrInvalidInput)
	}

	return nil
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" || utf8.RuneCountInString(trimmed) > 200 {
			return fmt.Errorf("%w: title must be between 1 and 200 characters", ErrInvalidInput)
		}
		r.Title = &trimmed
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 2000 {
		return fmt.Errorf("%w: description must be at most 2000 characters", ErrInvalidInput)
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return fmt.Errorf("%w: status must be one of todo, in_progress, done", ErrInvalidInput)
	}
	if r.Priority != nil && !ValidPriority(*r.Priority) {
		return fmt.Errorf("%w: priority must be one of low, medium, high", ErrInvalidInput)
	}

	return nil
}

func (r *UpdateTaskRequest) Patch() TaskPatch {
	return TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
	}
}
