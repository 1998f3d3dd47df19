package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/starterkit/server/internal/shared/errors"
	"github.com/starterkit/server/internal/shared/response"
	"github.com/starterkit/server/internal/utils/pick"
)

// SortOrder is the direction of a sorted listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Default values.
const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortBy    = "createdAt"
	DefaultSortOrder = SortDesc
)

// Fields are the query keys FromQuery reads.
var Fields = []string{"page", "limit", "sortBy", "sortOrder"}

// Options are partially specified pagination parameters.
// A nil pointer or empty string means "use the default".
type Options struct {
	Page      *int
	Limit     *int
	SortBy    string
	SortOrder SortOrder
}

// Resolved are fully defaulted pagination parameters.
type Resolved struct {
	Page      int       `json:"page"`
	Limit     int       `json:"limit"`
	Skip      int       `json:"skip"`
	SortBy    string    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// Calculate applies defaults and derives Skip = (Page-1)*Limit.
// Supplied values are used as given; zero or negative numbers are not clamped.
func Calculate(opts Options) Resolved {
	page := DefaultPage
	if opts.Page != nil {
		page = *opts.Page
	}
	limit := DefaultLimit
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}

	return Resolved{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}
}

// Meta builds the response meta for a listing of total items.
func (r Resolved) Meta(total int64) response.Meta {
	return response.Meta{Page: r.Page, Limit: r.Limit, Total: total}
}

// FromQuery reads Options from the request query string.
// Non-numeric page/limit or an unknown sort order yield a 400 ApiError.
func FromQuery(c *gin.Context) (Options, error) {
	raw := pick.Query(c.Request.URL.Query(), Fields...)

	var opts Options
	if v, ok := raw["page"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Options{}, apperrors.BadRequest(fmt.Sprintf("page must be a number, got %q", v))
		}
		opts.Page = &n
	}
	if v, ok := raw["limit"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Options{}, apperrors.BadRequest(fmt.Sprintf("limit must be a number, got %q", v))
		}
		opts.Limit = &n
	}
	opts.SortBy = raw["sortBy"]

	switch order := SortOrder(raw["sortOrder"]); order {
	case "", SortAsc, SortDesc:
		opts.SortOrder = order
	default:
		return Options{}, apperrors.BadRequest(fmt.Sprintf("sortOrder must be asc or desc, got %q", order))
	}

	return opts, nil
}
