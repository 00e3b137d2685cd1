package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FItraRizky/fro/internal/domain"
)

// sortProducts orders products in place by key. The sort is stable, so ties
// keep fixture order and page boundaries never move between calls.
func sortProducts(products []domain.Product, key SortKey, locale language.Tag) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortPopular:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.ReviewCount, a.ReviewCount)
		})
	case SortName:
		// Collators keep internal buffers; one per call keeps queries safe
		// for concurrent use.
		c := collate.New(locale, collate.IgnoreCase)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}
