package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/media", nil)
		params := ExtractPaginationParams(r)
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, defaultPageSize, params.PageSize)
	})

	t.Run("explicit window", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/media?page=3&page_size=10", nil)
		params := ExtractPaginationParams(r)
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 10, params.PageSize)
	})

	t.Run("clamps and ignores junk", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/media?page=-1&page_size=9999", nil)
		params := ExtractPaginationParams(r)
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, maxPageSize, params.PageSize)
	})
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	t.Run("middle page", func(t *testing.T) {
		page := Paginate(items, PaginationParams{Page: 2, PageSize: 3})
		assert.Equal(t, []int{4, 5, 6}, page.Items)
		assert.Equal(t, 7, page.Pagination.Total)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.True(t, page.Pagination.HasNext)
		assert.True(t, page.Pagination.HasPrev)
	})

	t.Run("short last page", func(t *testing.T) {
		page := Paginate(items, PaginationParams{Page: 3, PageSize: 3})
		assert.Equal(t, []int{7}, page.Items)
		assert.False(t, page.Pagination.HasNext)
	})

	t.Run("page past the end", func(t *testing.T) {
		page := Paginate(items, PaginationParams{Page: 9, PageSize: 3})
		assert.Empty(t, page.Items)
		assert.False(t, page.Pagination.HasNext)
	})

	t.Run("empty listing", func(t *testing.T) {
		page := Paginate([]int{}, PaginationParams{Page: 1, PageSize: 3})
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Pagination.TotalPages)
		assert.False(t, page.Pagination.HasPrev)
	})
}
