package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"go-task-api/internal/cache"
	"go-task-api/internal/model"
)

type TaskStore interface {
	FindByID(ctx context.Context, id string) (model.Task, error)
	Create(ctx context.Context, t model.Task) error
	Update(ctx context.Context, t model.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, ownerID string, c model.TaskCriteria) ([]model.Task, int, error)
	CountByStatus(ctx context.Context, ownerID string) (model.TaskStats, error)
}

// ListingCache memoizes task pages. Implementations must treat their
// own failures as misses; the service never checks cache errors.
type ListingCache interface {
	Get(ctx context.Context, key string) (*model.TaskPage, bool)
	Set(ctx context.Context, key string, page *model.TaskPage)
	Flush(ctx context.Context)
}

type TaskService struct {
	tasks TaskStore
	cache ListingCache
}

func NewTaskService(tasks TaskStore, listings ListingCache) *TaskService {
	return &TaskService{tasks: tasks, cache: listings}
}

func (s *TaskService) Create(ctx context.Context, req model.CreateTaskRequest, owner model.AuthUser) (model.Task, error) {
	now := time.Now().UTC()
	task := model.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.Task{}, err
	}

	s.cache.Flush(ctx)
	return task, nil
}

// List serves the owner's filtered page, from cache when possible. A
// cached page is returned verbatim; staleness is bounded only by the
// entry TTL and the flush-on-write policy.
func (s *TaskService) List(ctx context.Context, criteria model.TaskCriteria, owner model.AuthUser) (*model.TaskPage, error) {
	key := cache.ListKey(owner.ID, criteria)
	if page, ok := s.cache.Get(ctx, key); ok {
		return page, nil
	}

	tasks, total, err := s.tasks.List(ctx, owner.ID, criteria)
	if err != nil {
		return nil, err
	}

	page := &model.TaskPage{
		Tasks: tasks,
		Meta:  model.NewPageMeta(total, criteria.Page, criteria.Limit),
	}

	s.cache.Set(ctx, key, page)
	return page, nil
}

func (s *TaskService) Get(ctx context.Context, id string, caller model.AuthUser) (model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	if task.OwnerID != caller.ID && !caller.IsAdmin() {
		return model.Task{}, model.ErrForbidden
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch model.TaskPatch, caller model.AuthUser) (model.Task, error) {
	task, err := s.Get(ctx, id, caller)
	if err != nil {
		return model.Task{}, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.Task{}, err
	}

	s.cache.Flush(ctx)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string, caller model.AuthUser) error {
	if _, err := s.Get(ctx, id, caller); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Flush(ctx)
	return nil
}

func (s *TaskService) Statistics(ctx context.Context, caller model.AuthUser) (model.TaskStats, error) {
	stats, err := s.tasks.CountByStatus(ctx, caller.ID)
	if err != nil {
		return model.TaskStats{}, err
	}

	for _, status := range []string{model.StatusTodo, model.StatusInProgress, model.StatusDone} {
		if _, ok := stats.ByStatus[status]; !ok {
			stats.ByStatus[status] = 0
		}
	}
	return stats, nil
}
