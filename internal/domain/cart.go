package domain

import (
	"net/url"
)

// CartItem is one line of the cart: a unique (product, variant selection)
// pair. Price is the unit price captured when the line was created.
type CartItem struct {
	ID               string            `json:"id"`
	ProductID        string            `json:"product_id"`
	Product          Product           `json:"product"`
	Quantity         int               `json:"quantity"`
	SelectedVariants map[string]string `json:"selected_variants,omitempty"`
	Price            int64             `json:"price"`
	TotalPrice       int64             `json:"total_price"`
}

// VariantKey returns a canonical form of a variant selection. Keys are sorted,
// so two maps with the same pairs always produce the same key; nil and empty
// maps both produce "".
func VariantKey(variants map[string]string) string {
	if len(variants) == 0 {
		return ""
	}
	v := make(url.Values, len(variants))
	for k, val := range variants {
		v.Set(k, val)
	}
	return v.Encode()
}

// Matches reports whether the line holds the given product and selection.
func (c *CartItem) Matches(productID string, variants map[string]string) bool {
	return c.ProductID == productID && VariantKey(c.SelectedVariants) == VariantKey(variants)
}

// SetQuantity updates the quantity and keeps TotalPrice in step with the
// pinned unit price.
func (c *CartItem) SetQuantity(quantity int) {
	c.Quantity = quantity
	c.TotalPrice = c.Price * int64(quantity)
}

// Clone returns a deep copy of the line.
func (c CartItem) Clone() CartItem {
	out := c
	out.Product = c.Product.Clone()
	if c.SelectedVariants != nil {
		out.SelectedVariants = make(map[string]string, len(c.SelectedVariants))
		for k, v := range c.SelectedVariants {
			out.SelectedVariants[k] = v
		}
	}
	return out
}

// FindCartItem returns the index of the line with the given ID, or -1.
func FindCartItem(items []CartItem, lineID string) int {
	for i := range items {
		if items[i].ID == lineID {
			return i
		}
	}
	return -1
}
