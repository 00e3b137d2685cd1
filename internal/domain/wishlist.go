package domain

import "time"

// WishlistItem records a saved product. There is at most one per product ID.
type WishlistItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"added_at"`
}

// FindWishlistItem returns the index of the entry for productID, or -1.
func FindWishlistItem(items []WishlistItem, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
