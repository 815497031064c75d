package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Email:     "alice@example.com",
			Password:  "s3cret-pass",
			FirstName: "Alice",
			LastName:  "Smith",
		}
	}

	t.Run("accepts valid payload", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		req := valid()
		req.Email = "not-an-email"
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("rejects short password", func(t *testing.T) {
		req := valid()
		req.Password = "short"
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("rejects missing names", func(t *testing.T) {
		req := valid()
		req.FirstName = "   "
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		req := CreateTaskRequest{Title: "write report"}
		require.NoError(t, req.Validate())
		assert.Equal(t, StatusTodo, req.Status)
		assert.Equal(t, PriorityMedium, req.Priority)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		req := CreateTaskRequest{Title: "  "}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("rejects overlong title", func(t *testing.T) {
		req := CreateTaskRequest{Title: strings.Repeat("a", 201)}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		req := CreateTaskRequest{Title: "ok", Status: "blocked"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		req := CreateTaskRequest{Title: "ok", Priority: "urgent"}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	t.Run("nil fields pass through", func(t *testing.T) {
		req := UpdateTaskRequest{}
		require.NoError(t, req.Validate())
		assert.True(t, req.Patch().Empty())
	})

	t.Run("set fields are validated", func(t *testing.T) {
		bad := "nope"
		req := UpdateTaskRequest{Status: &bad}
		assert.ErrorIs(t, req.Validate(), ErrInvalidInput)
	})
}
