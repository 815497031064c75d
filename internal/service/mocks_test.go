package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"go-task-api/internal/model"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) Update(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserStore) List(ctx context.Context, page int, limit int) ([]model.User, int, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Int(1), args.Error(2)
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) FindByID(ctx context.Context, id string) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *mockTaskStore) Create(ctx context.Context, t model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskStore) Update(ctx context.Context, t model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTaskStore) List(ctx context.Context, ownerID string, c model.TaskCriteria) ([]model.Task, int, error) {
	args := m.Called(ctx, ownerID, c)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Int(1), args.Error(2)
}

func (m *mockTaskStore) CountByStatus(ctx context.Context, ownerID string) (model.TaskStats, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(model.TaskStats), args.Error(1)
}

type mockListingCache struct {
	mock.Mock
}

func (m *mockListingCache) Get(ctx context.Context, key string) (*model.TaskPage, bool) {
	args := m.Called(ctx, key)
	page, _ := args.Get(0).(*model.TaskPage)
	return page, args.Bool(1)
}

func (m *mockListingCache) Set(ctx context.Context, key string, page *model.TaskPage) {
	m.Called(ctx, key, page)
}

func (m *mockListingCache) Flush(ctx context.Context) {
	m.Called(ctx)
}
