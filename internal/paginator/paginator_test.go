package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_NumPages(t *testing.T) {
	assert.Equal(t, 1, New(0, 10).NumPages())
	assert.Equal(t, 1, New(10, 10).NumPages())
	assert.Equal(t, 2, New(13, 10).NumPages())
	assert.Equal(t, 5, New(13, 3).NumPages())
	assert.Equal(t, 13, New(13, 0).NumPages())
}

func TestPaginator_Page(t *testing.T) {
	t.Run("Every page holds min(size, remaining) items", func(t *testing.T) {
		for _, tc := range []struct{ count, size int }{{13, 10}, {13, 3}, {20, 10}, {1, 10}, {7, 1}} {
			p := New(tc.count, tc.size)
			total := 0
			for n := 1; n <= p.NumPages(); n++ {
				b := p.PageNumber(n)
				remaining := tc.count - (n-1)*tc.size
				expected := tc.size
				if remaining < expected {
					expected = remaining
				}
				assert.Equal(t, expected, b.Limit, "count=%d size=%d page=%d", tc.count, tc.size, n)
				assert.Equal(t, (n-1)*tc.size, b.Offset)
				total += b.Limit
			}
			assert.Equal(t, tc.count, total)
		}
	})

	t.Run("Thirteen items with page size ten", func(t *testing.T) {
		p := New(13, 10)

		first := p.Page("1")
		assert.Equal(t, 10, first.Limit)
		assert.False(t, first.HasPrevious())
		assert.True(t, first.HasNext())
		assert.Equal(t, 2, first.NextNumber())

		second := p.Page("2")
		assert.Equal(t, 3, second.Limit)
		assert.Equal(t, 10, second.Offset)
		assert.True(t, second.HasPrevious())
		assert.False(t, second.HasNext())
	})

	t.Run("Missing or invalid number gives first page", func(t *testing.T) {
		p := New(13, 10)
		assert.Equal(t, 1, p.Page("").Number)
		assert.Equal(t, 1, p.Page("abc").Number)
		assert.Equal(t, 1, p.Page("0").Number)
		assert.Equal(t, 1, p.Page("-4").Number)
	})

	t.Run("Out of range number is clamped to last page", func(t *testing.T) {
		p := New(13, 10)
		b := p.Page("99")
		assert.Equal(t, 2, b.Number)
		assert.Equal(t, 3, b.Limit)
	})

	t.Run("Empty collection has one empty page", func(t *testing.T) {
		b := New(0, 10).Page("5")
		assert.Equal(t, 1, b.Number)
		assert.Equal(t, 0, b.Limit)
		assert.Equal(t, 0, b.Offset)
	})
}
