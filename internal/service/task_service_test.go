package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-task-api/internal/cache"
	"go-task-api/internal/model"
)

var (
	owner = model.AuthUser{ID: "owner-1", Role: model.RoleUser, Active: true}
	other = model.AuthUser{ID: "other-1", Role: model.RoleUser, Active: true}
	admin = model.AuthUser{ID: "admin-1", Role: model.RoleAdmin, Active: true}
)

func TestTaskService_Create(t *testing.T) {
	tasks := new(mockTaskStore)
	listings := new(mockListingCache)
	svc := NewTaskService(tasks, listings)

	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
		return task.OwnerID == owner.ID && task.Title == "write report" && task.ID != ""
	})).Return(nil)
	listings.On("Flush", mock.Anything).Return()

	task, err := svc.Create(context.Background(), model.CreateTaskRequest{
		Title:    "write report",
		Status:   model.StatusTodo,
		Priority: model.PriorityHigh,
	}, owner)

	require.NoError(t, err)
	assert.Equal(t, owner.ID, task.OwnerID)
	listings.AssertCalled(t, "Flush", mock.Anything)
	tasks.AssertExpectations(t)
}

func TestTaskService_List(t *testing.T) {
	criteria := model.DefaultTaskCriteria()
	key := cache.ListKey(owner.ID, criteria)

	t.Run("cache hit returns payload without touching the store", func(t *testing.T) {
		tasks := new(mockTaskStore)
		listings := new(mockListingCache)
		svc := NewTaskService(tasks, listings)

		cached := &model.TaskPage{
			Tasks: []model.Task{{ID: "task-1", Title: "cached"}},
			Meta:  model.NewPageMeta(1, 1, 10),
		}
		listings.On("Get", mock.Anything, key).Return(cached, true)

		page, err := svc.List(context.Background(), criteria, owner)
		require.NoError(t, err)
		assert.Equal(t, cached, page)
		tasks.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss queries store and caches the result", func(t *testing.T) {
		tasks := new(mockTaskStore)
		listings := new(mockListingCache)
		svc := NewTaskService(tasks, listings)

		listings.On("Get", mock.Anything, key).Return(nil, false)
		tasks.On("List", mock.Anything, owner.ID, criteria).
			Return([]model.Task{{ID: "task-1"}}, 1, nil)
		listings.On("Set", mock.Anything, key, mock.AnythingOfType("*model.TaskPage")).Return()

		page, err := svc.List(context.Background(), criteria, owner)
		require.NoError(t, err)
		assert.Len(t, page.Tasks, 1)
		assert.Equal(t, 1, page.Meta.Total)
		listings.AssertExpectations(t)
	})

	t.Run("pagination metadata for 25 rows at page 3 limit 10", func(t *testing.T) {
		tasks := new(mockTaskStore)
		listings := new(mockListingCache)
		svc := NewTaskService(tasks, listings)

		paged := model.DefaultTaskCriteria()
		paged.Page = 3
		pagedKey := cache.ListKey(owner.ID, paged)

		listings.On("Get", mock.Anything, pagedKey).Return(nil, false)
		tasks.On("List", mock.Anything, owner.ID, paged).
			Return([]model.Task{{ID: "task-21"}, {ID: "task-22"}, {ID: "task-23"}, {ID: "task-24"}, {ID: "task-25"}}, 25, nil)
		listings.On("Set", mock.Anything, pagedKey, mock.Anything).Return()

		page, err := svc.List(context.Background(), paged, owner)
		require.NoError(t, err)
		assert.Equal(t, model.PageMeta{
			Total:           25,
			Page:            3,
			Limit:           10,
			TotalPages:      3,
			HasNextPage:     false,
			HasPreviousPage: true,
		}, page.Meta)
	})
}

func TestTaskService_Get(t *testing.T) {
	stored := model.Task{ID: "task-1", OwnerID: owner.ID, Title: "mine"}

	t.Run("owner reads own task", func(t *testing.T) {
		tasks := new(mockTaskStore)
		svc := NewTaskService(tasks, new(mockListingCache))
		tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)

		task, err := svc.Get(context.Background(), "task-1", owner)
		require.NoError(t, err)
		assert.Equal(t, stored, task)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		tasks := new(mockTaskStore)
		svc := NewTaskService(tasks, new(mockListingCache))
		tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)

		_, err := svc.Get(context.Background(), "task-1", other)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("admin reads anyone's task", func(t *testing.T) {
		tasks := new(mockTaskStore)
		svc := NewTaskService(tasks, new(mockListingCache))
		tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)

		task, err := svc.Get(context.Background(), "task-1", admin)
		require.NoError(t, err)
		assert.Equal(t, stored, task)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		tasks := new(mockTaskStore)
		svc := NewTaskService(tasks, new(mockListingCache))
		tasks.On("FindByID", mock.Anything, "task-x").Return(model.Task{}, model.ErrTaskNotFound)

		_, err := svc.Get(context.Background(), "task-x", owner)
		assert.ErrorIs(t, err, model.ErrTaskNotFound)
	})
}

func TestTaskService_Update(t *testing.T) {
	stored := model.Task{
		ID:          "task-1",
		OwnerID:     owner.ID,
		Title:       "original",
		Description: "keep me",
		Status:      model.StatusTodo,
		Priority:    model.PriorityLow,
	}

	t.Run("applies only provided fields and flushes cache", func(t *testing.T) {
		tasks := new(mockTaskStore)
		listings := new(mockListingCache)
		svc := NewTaskService(tasks, listings)

		tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)
		tasks.On("Update", mock.Anything, mock.MatchedBy(func(task model.Task) bool {
			return task.Status == model.StatusDone &&
				task.Title == "original" &&
				task.Description == "keep me"
		})).Return(nil)
		listings.On("Flush", mock.Anything).Return()

		status := model.StatusDone
		task, err := svc.Update(context.Background(), "task-1", model.TaskPatch{Status: &status}, owner)
		require.NoError(t, err)
		assert.Equal(t, model.StatusDone, task.Status)
		assert.Equal(t, "original", task.Title)
		listings.AssertCalled(t, "Flush", mock.Anything)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		tasks := new(mockTaskStore)
		listings := new(mockListingCache)
		svc := NewTaskService(tasks, listings)
		tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)

		title := "hijacked"
		_, err := svc.Update(context.Background(), "task-1", model.TaskPatch{Title: &title}, other)
		assert.ErrorIs(t, err, model.ErrForbidden)
		listings.AssertNotCalled(t, "Flush", mock.Anything)
	})
}

func TestTaskService_Delete(t *testing.T) {
	stored := model.Task{ID: "task-1", OwnerID: owner.ID}

	tasks := new(mockTaskStore)
	listings := new(mockListingCache)
	svc := NewTaskService(tasks, listings)

	tasks.On("FindByID", mock.Anything, "task-1").Return(stored, nil)
	tasks.On("Delete", mock.Anything, "task-1").Return(nil)
	listings.On("Flush", mock.Anything).Return()

	require.NoError(t, svc.Delete(context.Background(), "task-1", owner))
	listings.AssertCalled(t, "Flush", mock.Anything)
}

func TestTaskService_Statistics(t *testing.T) {
	tasks := new(mockTaskStore)
	svc := NewTaskService(tasks, new(mockListingCache))

	tasks.On("CountByStatus", mock.Anything, owner.ID).Return(model.TaskStats{
		Total:    4,
		ByStatus: map[string]int{model.StatusDone: 3, model.StatusTodo: 1},
	}, nil)

	stats, err := svc.Statistics(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	// statuses with no rows are reported as zero
	assert.Equal(t, 0, stats.ByStatus[model.StatusInProgress])
	assert.Equal(t, 3, stats.ByStatus[model.StatusDone])
}
