package pick

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	src := map[string]any{"page": 2, "limit": 5, "secret": "x"}

	t.Run("keeps only listed keys", func(t *testing.T) {
		assert.Equal(t, map[string]any{"page": 2, "limit": 5}, Pick(src, "page", "limit"))
	})

	t.Run("skips missing keys", func(t *testing.T) {
		assert.Equal(t, map[string]any{"page": 2}, Pick(src, "page", "sortBy"))
	})

	t.Run("nil source yields empty map", func(t *testing.T) {
		var m map[string]int
		got := Pick(m, "a")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("source is not modified", func(t *testing.T) {
		_ = Pick(src, "page")
		assert.Len(t, src, 3)
	})
}

func TestQuery(t *testing.T) {
	values := url.Values{
		"page":   {"3", "4"},
		"empty":  {},
		"search": {"go"},
	}

	got := Query(values, "page", "empty", "limit")
	assert.Equal(t, map[string]string{"page": "3"}, got)
}
