package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		meta := NewPageMeta(25, 2, 10)
		assert.Equal(t, PageMeta{
			Total: 25, Page: 2, Limit: 10,
			TotalPages: 3, HasNextPage: true, HasPreviousPage: true,
		}, meta)
	})

	t.Run("last page", func(t *testing.T) {
		meta := NewPageMeta(25, 3, 10)
		assert.Equal(t, PageMeta{
			Total: 25, Page: 3, Limit: 10,
			TotalPages: 3, HasNextPage: false, HasPreviousPage: true,
		}, meta)
	})

	t.Run("first page", func(t *testing.T) {
		meta := NewPageMeta(25, 1, 10)
		assert.True(t, meta.HasNextPage)
		assert.False(t, meta.HasPreviousPage)
	})

	t.Run("no rows", func(t *testing.T) {
		meta := NewPageMeta(0, 1, 10)
		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
		assert.False(t, meta.HasPreviousPage)
	})

	t.Run("total divisible by limit", func(t *testing.T) {
		meta := NewPageMeta(30, 3, 10)
		assert.Equal(t, 3, meta.TotalPages)
		assert.False(t, meta.HasNextPage)
	})
}
