package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floors(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{"empty", 0, 30, 0},
		{"one item", 1, 30, 1},
		{"exact fit", 60, 30, 2},
		{"one over", 61, 30, 3},
		{"125 posts", 125, PostPageSize, 5},
		{"bad size", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.size))
		})
	}
}

func TestPaginate_125Posts(t *testing.T) {
	items := floors(125)

	page5, total, err := Paginate(items, 5, PostPageSize)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []int{121, 122, 123, 124, 125}, page5)

	page4, total, err := Paginate(items, 4, PostPageSize)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page4, 30)
	assert.Equal(t, 91, page4[0])
	assert.Equal(t, 120, page4[29])
}

func TestPaginate_ConcatenationRebuildsSet(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 49, 50, 51, 333} {
		items := floors(n)
		_, total, err := Paginate(items, 1, CommentPageSize)
		require.NoError(t, err)

		var all []int
		for page := 1; page <= total; page++ {
			slice, pages, err := Paginate(items, page, CommentPageSize)
			require.NoError(t, err)
			require.Equal(t, total, pages)
			all = append(all, slice...)
		}
		assert.Equal(t, items, all, "n=%d", n)
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	items := floors(77)
	a, ta, errA := Paginate(items, 2, ThreadPageSize)
	b, tb, errB := Paginate(items, 2, ThreadPageSize)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
	assert.Equal(t, ta, tb)
}

func TestPaginate_SinglePageIsWholeSet(t *testing.T) {
	items := floors(7)
	page, total, err := Paginate(items, 1, PostPageSize)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, items, page)
}

func TestPaginate_OutOfRange(t *testing.T) {
	items := floors(61)

	_, total, err := Paginate(items, 4, PostPageSize)
	assert.ErrorIs(t, err, ErrOutOfRange, "page totalPages+1")
	assert.Equal(t, 3, total)

	_, _, err = Paginate(items, 0, PostPageSize)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = Paginate(items, -1, PostPageSize)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPaginate_Empty(t *testing.T) {
	page, total, err := Paginate([]string{}, 1, ThreadPageSize)
	require.NoError(t, err, "empty set is a valid zero-result state")
	assert.Equal(t, 0, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)

	_, _, err = Paginate([]string(nil), 2, ThreadPageSize)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPaginate_SliceDoesNotAliasTail(t *testing.T) {
	items := floors(20)
	page, _, err := Paginate(items, 1, CommentPageSize)
	require.NoError(t, err)

	page = append(page, 999)
	assert.Equal(t, 11, items[10], "appending to a page must not overwrite the next page")
	assert.Len(t, page, 11)
}
