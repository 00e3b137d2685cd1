package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/FItraRizky/fro/pkg/pagination"
)

// SortKey selects the single active ordering of a product listing.
type SortKey string

// Sort options for product listings.
const (
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// PageSize is the fixed number of products per listing page.
const PageSize = pagination.DefaultPerPage

// MaxRating is the upper bound of a product rating.
const MaxRating = 5.0

// ValidSortKeys returns every accepted sort key, default first.
func ValidSortKeys() []SortKey {
	return []SortKey{SortNewest, SortPopular, SortRating, SortPriceLow, SortPriceHigh, SortName}
}

// IsValidSort checks whether s names a known sort key.
func IsValidSort(s string) bool {
	for _, k := range ValidSortKeys() {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Params holds every filter, the sort key and the requested page of a listing.
// The zero value lists the first page of all products, newest first.
type Params struct {
	Search      string   `json:"search,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	MinPrice    *int64   `json:"min_price,omitempty"`
	MaxPrice    *int64   `json:"max_price,omitempty"`
	MinRating   float64  `json:"min_rating,omitempty"`
	InStockOnly bool     `json:"in_stock_only,omitempty"`
	OnSaleOnly  bool     `json:"on_sale_only,omitempty"`
	Sort        SortKey  `json:"sort"`
	Page        int      `json:"page"`
}

// Normalize coerces out-of-range values to defaults instead of rejecting them:
// negative price bounds clamp to 0, inverted bounds swap, the rating threshold
// clamps to [0, 5], unknown sort keys fall back to newest and pages below 1
// become 1. Category slugs are trimmed, lowercased and deduplicated. The
// search needle is kept verbatim.
func (p Params) Normalize() Params {
	out := p

	out.Categories = nil
	seen := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out.Categories = append(out.Categories, c)
	}

	out.MinPrice = clampPrice(p.MinPrice)
	out.MaxPrice = clampPrice(p.MaxPrice)
	if out.MinPrice != nil && out.MaxPrice != nil && *out.MinPrice > *out.MaxPrice {
		out.MinPrice, out.MaxPrice = out.MaxPrice, out.MinPrice
	}

	switch {
	case p.MinRating < 0:
		out.MinRating = 0
	case p.MinRating > MaxRating:
		out.MinRating = MaxRating
	}

	if !IsValidSort(string(p.Sort)) {
		out.Sort = SortNewest
	}
	if p.Page < 1 {
		out.Page = 1
	}
	return out
}

func clampPrice(v *int64) *int64 {
	if v == nil {
		return nil
	}
	n := *v
	if n < 0 {
		n = 0
	}
	return &n
}

// ParamsFromValues decodes listing parameters from a route's query string.
// It understands the storefront links (category, sale, search) as well as the
// filter sidebar (categories, min_price, max_price, rating, in_stock, sort,
// page). Values that do not parse are ignored.
func ParamsFromValues(v url.Values) Params {
	p := Params{
		Search: v.Get("search"),
		Sort:   SortKey(v.Get("sort")),
	}
	if p.Search == "" {
		p.Search = v.Get("q")
	}

	if c := v.Get("category"); c != "" {
		p.Categories = append(p.Categories, c)
	}
	for _, raw := range v["categories"] {
		p.Categories = append(p.Categories, strings.Split(raw, ",")...)
	}

	if n, err := strconv.ParseInt(v.Get("min_price"), 10, 64); err == nil {
		p.MinPrice = &n
	}
	if n, err := strconv.ParseInt(v.Get("max_price"), 10, 64); err == nil {
		p.MaxPrice = &n
	}
	if r, err := strconv.ParseFloat(v.Get("rating"), 64); err == nil {
		p.MinRating = r
	}

	p.OnSaleOnly = parseFlag(v.Get("sale")) || parseFlag(v.Get("on_sale"))
	p.InStockOnly = parseFlag(v.Get("in_stock"))
	p.Page = pagination.FromValues(v, PageSize).Page

	return p.Normalize()
}

func parseFlag(raw string) bool {
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}
