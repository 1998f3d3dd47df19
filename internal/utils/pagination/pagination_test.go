package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/starterkit/server/internal/shared/errors"
	"github.com/starterkit/server/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func intPtr(v int) *int { return &v }

func TestCalculate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := Calculate(Options{})
		assert.Equal(t, Resolved{Page: 1, Limit: 10, Skip: 0, SortBy: "createdAt", SortOrder: SortDesc}, got)
	})

	t.Run("page and limit", func(t *testing.T) {
		got := Calculate(Options{Page: intPtr(2), Limit: intPtr(5)})
		assert.Equal(t, Resolved{Page: 2, Limit: 5, Skip: 5, SortBy: "createdAt", SortOrder: SortDesc}, got)
	})

	t.Run("sorting", func(t *testing.T) {
		got := Calculate(Options{SortBy: "name", SortOrder: SortAsc})
		assert.Equal(t, "name", got.SortBy)
		assert.Equal(t, SortAsc, got.SortOrder)
	})

	t.Run("zero is not clamped", func(t *testing.T) {
		got := Calculate(Options{Page: intPtr(0), Limit: intPtr(0)})
		assert.Equal(t, 0, got.Page)
		assert.Equal(t, 0, got.Limit)
		assert.Equal(t, 0, got.Skip)
	})
}

func TestCalculate_SkipInvariant(t *testing.T) {
	for page := -2; page <= 5; page++ {
		for limit := 0; limit <= 25; limit += 5 {
			got := Calculate(Options{Page: intPtr(page), Limit: intPtr(limit)})
			assert.Equal(t, (got.Page-1)*got.Limit, got.Skip, "page=%d limit=%d", page, limit)
		}
	}
}

func TestResolved_Meta(t *testing.T) {
	r := Calculate(Options{Page: intPtr(3), Limit: intPtr(20)})
	assert.Equal(t, response.Meta{Page: 3, Limit: 20, Total: 42}, r.Meta(42))
}

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?"+rawQuery, nil)
	return c
}

func TestFromQuery(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		opts, err := FromQuery(queryContext(""))
		require.NoError(t, err)
		assert.Equal(t, Options{}, opts)
	})

	t.Run("all fields", func(t *testing.T) {
		opts, err := FromQuery(queryContext("page=2&limit=5&sortBy=name&sortOrder=asc&other=x"))
		require.NoError(t, err)
		assert.Equal(t, Resolved{Page: 2, Limit: 5, Skip: 5, SortBy: "name", SortOrder: SortAsc}, Calculate(opts))
	})

	t.Run("non numeric page", func(t *testing.T) {
		_, err := FromQuery(queryContext("page=two"))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	})

	t.Run("non numeric limit", func(t *testing.T) {
		_, err := FromQuery(queryContext("limit=ten"))
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	})

	t.Run("unknown sort order", func(t *testing.T) {
		_, err := FromQuery(queryContext("sortOrder=sideways"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sortOrder")
	})
}
