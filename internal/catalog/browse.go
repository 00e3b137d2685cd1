package catalog

import (
	"slices"

	"github.com/FItraRizky/fro/internal/domain"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
)

// Limits of the storefront product rails.
const (
	RelatedLimit     = 4
	FeaturedLimit    = 8
	NewArrivalsLimit = 4
	BestsellerLimit  = 4
)

// Product returns a copy of the product whose ID or slug is id.
func (e *Engine) Product(id string) (domain.Product, error) {
	for i := range e.products {
		if e.products[i].ID == id || e.products[i].Slug == id {
			return e.products[i].Clone(), nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", id)
}

// Related returns up to limit products from the same category as id,
// excluding id itself, in catalog order.
func (e *Engine) Related(id string, limit int) ([]domain.Product, error) {
	p, err := e.Product(id)
	if err != nil {
		return nil, err
	}
	return e.collect(limit, func(c *domain.Product) bool {
		return c.ID != p.ID && c.Category == p.Category
	}), nil
}

// Featured returns the featured products.
func (e *Engine) Featured() []domain.Product {
	return e.collect(FeaturedLimit, func(p *domain.Product) bool { return p.IsFeatured })
}

// NewArrivals returns products flagged as new.
func (e *Engine) NewArrivals() []domain.Product {
	return e.collect(NewArrivalsLimit, func(p *domain.Product) bool { return p.IsNew })
}

// Bestsellers returns products flagged as bestsellers.
func (e *Engine) Bestsellers() []domain.Product {
	return e.collect(BestsellerLimit, func(p *domain.Product) bool { return p.IsBestseller })
}

// Categories returns the category tree.
func (e *Engine) Categories() []domain.Category {
	out := make([]domain.Category, len(e.categories))
	for i, c := range e.categories {
		out[i] = c
		out[i].Children = slices.Clone(c.Children)
	}
	return out
}

func (e *Engine) collect(limit int, keep Filter) []domain.Product {
	out := make([]domain.Product, 0, limit)
	for i := range e.products {
		if len(out) == limit {
			break
		}
		if keep(&e.products[i]) {
			out = append(out, e.products[i].Clone())
		}
	}
	return out
}
