package pagination

import (
	"math"
	"net/url"
	"strconv"
)

// DefaultPerPage is the storefront grid size.
const DefaultPerPage = 12

// Params holds 1-indexed page parameters.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// DefaultParams returns the first page of a storefront grid.
func DefaultParams() Params {
	return New(1, DefaultPerPage)
}

// New builds Params, coercing a page below 1 to 1 and a non-positive size to
// DefaultPerPage. An offset that would overflow saturates at math.MaxInt.
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/perPage {
		offset = (page - 1) * perPage
	}
	return Params{
		Page:    page,
		PerPage: perPage,
		Offset:  offset,
	}
}

// FromValues reads "page" from query values; the page size stays fixed.
// Unparseable or non-positive pages fall back to 1.
func FromValues(v url.Values, perPage int) Params {
	page := 1
	if raw := v.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return New(page, perPage)
}

// Bounds returns the half-open slice window [start, end) of this page over a
// list of total items. A page past the end yields start == end == total.
func (p Params) Bounds(total int) (start, end int) {
	start = min(max(p.Offset, 0), total)
	end = total
	if p.PerPage > 0 && p.PerPage < total-start {
		end = start + p.PerPage
	}
	return start, end
}

// TotalPages returns ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage < 1 {
		return 0
	}
	pages := total / perPage
	if total%perPage > 0 {
		pages++
	}
	return pages
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Slice cuts the requested page out of items and describes it.
func Slice[T any](items []T, params Params) Result[T] {
	start, end := params.Bounds(len(items))
	page := make([]T, end-start)
	copy(page, items[start:end])
	return NewResult(page, len(items), params)
}

// NewResult creates a paginated result.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := TotalPages(totalCount, params.PerPage)
	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
