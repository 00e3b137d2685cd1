package catalog

import (
	"strings"

	"github.com/FItraRizky/fro/internal/domain"
)

// Filter decides whether a product stays in a listing.
type Filter func(p *domain.Product) bool

// Filters returns one predicate per active filter of normalized params.
// They are independent, so any application order selects the same set.
func Filters(p Params) []Filter {
	var filters []Filter

	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		filters = append(filters, func(prod *domain.Product) bool {
			return strings.Contains(strings.ToLower(prod.Name), needle) ||
				strings.Contains(strings.ToLower(prod.Description), needle) ||
				strings.Contains(strings.ToLower(prod.Category), needle)
		})
	}

	if len(p.Categories) > 0 {
		slugs := p.Categories
		filters = append(filters, func(prod *domain.Product) bool {
			category := strings.ToLower(prod.Category)
			for _, slug := range slugs {
				if strings.Contains(category, slug) {
					return true
				}
			}
			return false
		})
	}

	if p.MinPrice != nil {
		lo := *p.MinPrice
		filters = append(filters, func(prod *domain.Product) bool { return prod.Price >= lo })
	}
	if p.MaxPrice != nil {
		hi := *p.MaxPrice
		filters = append(filters, func(prod *domain.Product) bool { return prod.Price <= hi })
	}

	if p.MinRating > 0 {
		threshold := p.MinRating
		filters = append(filters, func(prod *domain.Product) bool { return prod.Rating >= threshold })
	}

	if p.InStockOnly {
		filters = append(filters, (*domain.Product).InStock)
	}
	if p.OnSaleOnly {
		filters = append(filters, (*domain.Product).OnSale)
	}

	return filters
}

// Match reports whether prod passes every filter.
func Match(prod *domain.Product, filters []Filter) bool {
	for _, f := range filters {
		if !f(prod) {
			return false
		}
	}
	return true
}
