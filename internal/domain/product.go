package domain

import (
	"strings"
	"time"
)

// Variant types a shopper can select on a product page.
const (
	VariantColor    = "color"
	VariantSize     = "size"
	VariantMaterial = "material"
)

// Product is an immutable catalog entry. Prices are whole rupiah.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	OriginalPrice  *int64            `json:"original_price,omitempty"`
	Discount       int               `json:"discount,omitempty"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"review_count"`
	Sold           int               `json:"sold,omitempty"`
	StockQuantity  int               `json:"stock_quantity"`
	Variants       []ProductVariant  `json:"variants,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Features       []string          `json:"features,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	IsFeatured     bool              `json:"is_featured"`
	IsNew          bool              `json:"is_new"`
	IsBestseller   bool              `json:"is_bestseller"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ProductVariant is a selectable attribute value. It carries its own stock
// flag and price delta for display only.
type ProductVariant struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Color      string `json:"color,omitempty"`
	PriceDelta int64  `json:"price_delta"`
	Image      string `json:"image,omitempty"`
	InStock    bool   `json:"in_stock"`
}

// InStock reports whether any units are left.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// OnSale reports whether the product has an original price strictly above
// its current price.
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// PrimaryImage returns the first image or "" when there is none.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// VariantOptions groups the variant values of a product by type, keeping
// fixture order within each type.
func (p *Product) VariantOptions() map[string][]string {
	opts := make(map[string][]string)
	for _, v := range p.Variants {
		opts[v.Type] = append(opts[v.Type], v.Value)
	}
	return opts
}

// HasVariant reports whether value is offered for the given variant type.
func (p *Product) HasVariant(variantType, value string) bool {
	for _, v := range p.Variants {
		if v.Type == variantType && strings.EqualFold(v.Value, value) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so snapshots held by cart lines never alias the
// fixture.
func (p Product) Clone() Product {
	c := p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		c.OriginalPrice = &op
	}
	c.Images = cloneSlice(p.Images)
	c.Variants = cloneSlice(p.Variants)
	c.Features = cloneSlice(p.Features)
	c.Tags = cloneSlice(p.Tags)
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// DiscountPercentage returns the markdown against the original price rounded
// to a whole percent, or 0 when the product is not on sale.
func (p *Product) DiscountPercentage() int {
	if !p.OnSale() || *p.OriginalPrice == 0 {
		return 0
	}
	orig := *p.OriginalPrice
	return int((200*(orig-p.Price) + orig) / (2 * orig))
}
