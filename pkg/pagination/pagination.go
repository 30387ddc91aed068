package pagination

import (
	"strconv"

	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped page window.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the query string. Garbage falls back to
// the defaults and limit is capped at MaxLimit.
func Parse(c *gin.Context) Params {
	return New(atoiOr(c.Query("page"), DefaultPage), atoiOr(c.Query("limit"), DefaultLimit))
}

// New clamps page and limit the same way Parse does, for callers outside HTTP.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages is the number of pages needed for total rows.
func (p Params) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// ToPage wraps items in the list payload.
func (p Params) ToPage(items interface{}, total int64) response.Page {
	return response.Page{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
	}
}

func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
