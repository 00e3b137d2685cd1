package store

import (
	"fmt"

	"github.com/FItraRizky/fro/internal/domain"
)

// Slice identifies the persisted parts of the state.
type Slice uint8

const (
	SliceCart Slice = 1 << iota
	SliceWishlist
	SliceUser
)

// Has reports whether s includes other.
func (s Slice) Has(other Slice) bool {
	return s&other != 0
}

// Notice is the message a discrete action surfaces to the shopper.
type Notice struct {
	Message string
	Level   domain.NotificationLevel
}

// Outcome describes the effects of one Reduce call.
type Outcome struct {
	// Changed lists the persisted slices whose contents must be written.
	Changed Slice
	// Notice is nil for continuous adjustments and state-only actions.
	Notice *Notice
	// Duplicate is set when AddToWishlist found the product already saved.
	Duplicate bool
}

// Shopper-facing notification messages.
const (
	msgCartAdded       = "%s ditambahkan ke keranjang"
	msgCartRemoved     = "Produk dihapus dari keranjang"
	msgCartCleared     = "Keranjang dikosongkan"
	msgWishlistAdded   = "%s ditambahkan ke wishlist"
	msgWishlistExists  = "Produk sudah ada di wishlist"
	msgWishlistRemoved = "Produk dihapus dari wishlist"
)

func notice(level domain.NotificationLevel, format string, args ...any) *Notice {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Notice{Message: msg, Level: level}
}

// Reduce applies action to state and returns the next state. It never
// modifies state and has no side effects; identifiers and timestamps come
// from the action.
func Reduce(state domain.AppState, action Action) (domain.AppState, Outcome) {
	next := state

	switch a := action.(type) {
	case AddToCart:
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		next.Cart = make([]domain.CartItem, 0, len(state.Cart)+1)
		merged := false
		for _, item := range state.Cart {
			if !merged && item.Matches(a.Product.ID, a.Variants) {
				item.SetQuantity(item.Quantity + qty)
				merged = true
			}
			next.Cart = append(next.Cart, item)
		}
		if !merged {
			line := domain.CartItem{
				ID:               a.LineID,
				ProductID:        a.Product.ID,
				Product:          a.Product.Clone(),
				SelectedVariants: cloneVariants(a.Variants),
				Price:            a.Product.Price,
			}
			line.SetQuantity(qty)
			next.Cart = append(next.Cart, line)
		}
		return next, Outcome{Changed: SliceCart, Notice: notice(domain.LevelSuccess, msgCartAdded, a.Product.Name)}

	case RemoveFromCart:
		next.Cart = removeLine(state.Cart, a.LineID)
		return next, Outcome{Changed: SliceCart, Notice: notice(domain.LevelInfo, msgCartRemoved)}

	case UpdateQuantity:
		if a.Quantity <= 0 {
			next.Cart = removeLine(state.Cart, a.LineID)
			return next, Outcome{Changed: SliceCart}
		}
		next.Cart = make([]domain.CartItem, len(state.Cart))
		copy(next.Cart, state.Cart)
		if i := domain.FindCartItem(next.Cart, a.LineID); i >= 0 {
			next.Cart[i].SetQuantity(a.Quantity)
		}
		return next, Outcome{Changed: SliceCart}

	case ClearCart:
		next.Cart = []domain.CartItem{}
		return next, Outcome{Changed: SliceCart, Notice: notice(domain.LevelInfo, msgCartCleared)}

	case AddToWishlist:
		if state.InWishlist(a.Product.ID) {
			return state, Outcome{Duplicate: true, Notice: notice(domain.LevelWarning, msgWishlistExists)}
		}
		next.Wishlist = make([]domain.WishlistItem, len(state.Wishlist), len(state.Wishlist)+1)
		copy(next.Wishlist, state.Wishlist)
		next.Wishlist = append(next.Wishlist, domain.WishlistItem{
			ID:        a.EntryID,
			ProductID: a.Product.ID,
			Product:   a.Product.Clone(),
			AddedAt:   a.AddedAt,
		})
		return next, Outcome{Changed: SliceWishlist, Notice: notice(domain.LevelSuccess, msgWishlistAdded, a.Product.Name)}

	case RemoveFromWishlist:
		next.Wishlist = make([]domain.WishlistItem, 0, len(state.Wishlist))
		for _, item := range state.Wishlist {
			if item.ProductID != a.ProductID {
				next.Wishlist = append(next.Wishlist, item)
			}
		}
		return next, Outcome{Changed: SliceWishlist, Notice: notice(domain.LevelInfo, msgWishlistRemoved)}

	case SetUser:
		next.User = a.User.Clone()
		return next, Outcome{Changed: SliceUser}

	case SetLoading:
		next.IsLoading = a.Loading
		return next, Outcome{}

	case SetError:
		next.Error = nil
		if a.Message != nil {
			msg := *a.Message
			next.Error = &msg
		}
		return next, Outcome{}

	case LoadCart:
		next.Cart = make([]domain.CartItem, 0, len(a.Items))
		for _, item := range a.Items {
			if item.Quantity <= 0 {
				continue
			}
			item = item.Clone()
			item.SetQuantity(item.Quantity)
			next.Cart = append(next.Cart, item)
		}
		return next, Outcome{}

	case LoadWishlist:
		next.Wishlist = make([]domain.WishlistItem, 0, len(a.Items))
		for _, item := range a.Items {
			if domain.FindWishlistItem(next.Wishlist, item.ProductID) >= 0 {
				continue
			}
			next.Wishlist = append(next.Wishlist, item)
		}
		return next, Outcome{}
	}

	return state, Outcome{}
}

func removeLine(items []domain.CartItem, lineID string) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != lineID {
			out = append(out, item)
		}
	}
	return out
}

func cloneVariants(v map[string]string) map[string]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string]string, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
