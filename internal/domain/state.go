package domain

// AppState is the aggregate owned by a store. Readers get copies.
type AppState struct {
	User      *User          `json:"user"`
	Cart      []CartItem     `json:"cart"`
	Wishlist  []WishlistItem `json:"wishlist"`
	IsLoading bool           `json:"is_loading"`
	Error     *string        `json:"error"`
}

// NewAppState returns the empty initial state.
func NewAppState() AppState {
	return AppState{
		Cart:     []CartItem{},
		Wishlist: []WishlistItem{},
	}
}

// CartCount returns the number of units across all lines.
func (s *AppState) CartCount() int {
	var n int
	for _, item := range s.Cart {
		n += item.Quantity
	}
	return n
}

// CartSubtotal sums the line totals.
func (s *AppState) CartSubtotal() int64 {
	var total int64
	for _, item := range s.Cart {
		total += item.TotalPrice
	}
	return total
}

// InWishlist reports whether productID is saved.
func (s *AppState) InWishlist(productID string) bool {
	return FindWishlistItem(s.Wishlist, productID) >= 0
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	c := AppState{
		User:      s.User.Clone(),
		Cart:      make([]CartItem, len(s.Cart)),
		Wishlist:  make([]WishlistItem, len(s.Wishlist)),
		IsLoading: s.IsLoading,
	}
	for i := range s.Cart {
		c.Cart[i] = s.Cart[i].Clone()
	}
	for i := range s.Wishlist {
		c.Wishlist[i] = s.Wishlist[i]
		c.Wishlist[i].Product = s.Wishlist[i].Product.Clone()
	}
	if s.Error != nil {
		msg := *s.Error
		c.Error = &msg
	}
	return c
}
