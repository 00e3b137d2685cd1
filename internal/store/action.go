package store

import (
	"time"

	"github.com/FItraRizky/fro/internal/domain"
)

// Action is a state transition request handled by Reduce. The set of actions
// is closed; values that are not defined in this package cannot be built.
type Action interface {
	actionName() string
}

// AddToCart adds Quantity units of Product with the given variant selection.
// LineID is used only when no matching line exists.
type AddToCart struct {
	LineID   string
	Product  domain.Product
	Quantity int
	Variants map[string]string
}

// RemoveFromCart deletes the line with LineID if present.
type RemoveFromCart struct {
	LineID string
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line.
type UpdateQuantity struct {
	LineID   string
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// AddToWishlist saves Product unless it is already saved.
type AddToWishlist struct {
	EntryID string
	Product domain.Product
	AddedAt time.Time
}

// RemoveFromWishlist deletes the entry for ProductID if present.
type RemoveFromWishlist struct {
	ProductID string
}

// SetUser replaces the signed-in user. A nil user signs out.
type SetUser struct {
	User *domain.User
}

// SetLoading replaces the loading flag.
type SetLoading struct {
	Loading bool
}

// SetError replaces the error message. Nil clears it.
type SetError struct {
	Message *string
}

// LoadCart replaces the cart with persisted lines.
type LoadCart struct {
	Items []domain.CartItem
}

// LoadWishlist replaces the wishlist with persisted entries.
type LoadWishlist struct {
	Items []domain.WishlistItem
}

func (AddToCart) actionName() string          { return "add_to_cart" }
func (RemoveFromCart) actionName() string     { return "remove_from_cart" }
func (UpdateQuantity) actionName() string     { return "update_quantity" }
func (ClearCart) actionName() string          { return "clear_cart" }
func (AddToWishlist) actionName() string      { return "add_to_wishlist" }
func (RemoveFromWishlist) actionName() string { return "remove_from_wishlist" }
func (SetUser) actionName() string            { return "set_user" }
func (SetLoading) actionName() string         { return "set_loading" }
func (SetError) actionName() string           { return "set_error" }
func (LoadCart) actionName() string           { return "load_cart" }
func (LoadWishlist) actionName() string       { return "load_wishlist" }

// ActionName returns the snake_case name of an action for logs and metrics.
func ActionName(a Action) string {
	return a.actionName()
}
