package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Paging(t *testing.T) {
	t.Run("defaults limit when page size is unset", func(t *testing.T) {
		assert.Equal(t, 20, Filter{}.Limit())
		assert.Equal(t, 20, Filter{PageSize: -5}.Limit())
		assert.Equal(t, 50, Filter{PageSize: 50}.Limit())
	})

	t.Run("offset clamps page to one", func(t *testing.T) {
		assert.Equal(t, 0, Filter{Page: 0, PageSize: 10}.Offset())
		assert.Equal(t, 20, Filter{Page: 3, PageSize: 10}.Offset())
	})
}

func TestNewPaginated(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		p := NewPaginated([]int{1, 2, 3}, 25, 1, 10)
		assert.Equal(t, 3, p.TotalPages)
		assert.EqualValues(t, 25, p.Total)
	})

	t.Run("exact multiple needs no extra page", func(t *testing.T) {
		p := NewPaginated([]int{}, 40, 1, 10)
		assert.Equal(t, 4, p.TotalPages)
	})

	t.Run("unset page size falls back to the default", func(t *testing.T) {
		p := NewPaginated([]string{"a"}, 45, 1, 0)
		assert.Equal(t, 20, p.PageSize)
		assert.Equal(t, 3, p.TotalPages)
	})
}
