package service

import (
	"context"
	"time"

	"go-task-api/internal/model"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *UserService) List(ctx context.Context, page int, limit int) ([]model.AuthUser, model.PageMeta, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, model.PageMeta{}, err
	}

	out := make([]model.AuthUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, model.NewPageMeta(total, page, limit), nil
}

// Update applies a partial user patch. Non-admins may only patch their
// own profile, and only admins may change roles or the active flag.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest, caller model.AuthUser) (model.AuthUser, error) {
	if caller.ID != id && !caller.IsAdmin() {
		return model.AuthUser{}, model.ErrForbidden
	}
	if (req.Role != nil || req.Active != nil) && !caller.IsAdmin() {
		return model.AuthUser{}, model.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.AuthUser{}, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return model.AuthUser{}, err
		}
		if exists {
			return model.AuthUser{}, model.ErrEmailTaken
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

// Deactivate is a soft delete: the record stays, the account cannot
// log in or pass the access guard.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.users.Deactivate(ctx, id)
}

// Delete permanently removes the user and, through the schema cascade,
// their tasks.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
