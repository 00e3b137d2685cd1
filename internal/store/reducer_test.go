package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/internal/fixture"
)

func product(t *testing.T, id string) domain.Product {
	t.Helper()
	for _, p := range fixture.Products() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("no fixture product %s", id)
	return domain.Product{}
}

func reduceAll(state domain.AppState, actions ...Action) domain.AppState {
	for _, a := range actions {
		state, _ = Reduce(state, a)
	}
	return state
}

func assertTotals(t *testing.T, state domain.AppState) {
	t.Helper()
	for _, item := range state.Cart {
		assert.Equal(t, item.Price*int64(item.Quantity), item.TotalPrice, item.ID)
	}
}

func TestReduce_AddToCart_MergesSameSelection(t *testing.T) {
	p := product(t, "1")
	state := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 2},
		AddToCart{LineID: "b", Product: p, Quantity: 3},
	)

	require.Len(t, state.Cart, 1)
	assert.Equal(t, "a", state.Cart[0].ID)
	assert.Equal(t, 5, state.Cart[0].Quantity)
	assert.Equal(t, int64(5*299000), state.Cart[0].TotalPrice)
}

func TestReduce_AddToCart_VariantOrderDoesNotMatter(t *testing.T) {
	p := product(t, "1")
	state := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 1, Variants: map[string]string{"color": "Biru", "size": "M"}},
		AddToCart{LineID: "b", Product: p, Quantity: 1, Variants: map[string]string{"size": "M", "color": "Biru"}},
	)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Quantity)
}

func TestReduce_AddToCart_NilAndEmptyVariantsMatch(t *testing.T) {
	p := product(t, "4")
	state := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 1},
		AddToCart{LineID: "b", Product: p, Quantity: 1, Variants: map[string]string{}},
	)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 2, state.Cart[0].Quantity)
}

func TestReduce_AddToCart_DifferentVariantsAreDistinct(t *testing.T) {
	p := product(t, "1")
	state := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 1, Variants: map[string]string{"size": "M"}},
		AddToCart{LineID: "b", Product: p, Quantity: 1, Variants: map[string]string{"size": "L"}},
		AddToCart{LineID: "c", Product: p, Quantity: 1},
	)
	require.Len(t, state.Cart, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{state.Cart[0].ID, state.Cart[1].ID, state.Cart[2].ID})
}

func TestReduce_AddToCart_PinsUnitPrice(t *testing.T) {
	p := product(t, "2")
	state := reduceAll(domain.NewAppState(), AddToCart{LineID: "a", Product: p, Quantity: 1})

	p.Price = 1
	state = reduceAll(state, AddToCart{LineID: "b", Product: p, Quantity: 1})

	require.Len(t, state.Cart, 1)
	assert.Equal(t, int64(450000), state.Cart[0].Price)
	assert.Equal(t, int64(900000), state.Cart[0].TotalPrice)
}

func TestReduce_AddToCart_CoercesQuantity(t *testing.T) {
	state := reduceAll(domain.NewAppState(), AddToCart{LineID: "a", Product: product(t, "3"), Quantity: 0})
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 1, state.Cart[0].Quantity)
}

func TestReduce_AddToCart_Outcome(t *testing.T) {
	_, out := Reduce(domain.NewAppState(), AddToCart{LineID: "a", Product: product(t, "1"), Quantity: 1})
	assert.Equal(t, SliceCart, out.Changed)
	require.NotNil(t, out.Notice)
	assert.Equal(t, domain.LevelSuccess, out.Notice.Level)
	assert.Equal(t, "Kemeja Kasual Premium ditambahkan ke keranjang", out.Notice.Message)
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	p := product(t, "1")
	before := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 1},
		AddToWishlist{EntryID: "w", Product: p},
	)
	snapshot := before.Clone()

	reduceAll(before,
		AddToCart{LineID: "b", Product: p, Quantity: 4},
		UpdateQuantity{LineID: "a", Quantity: 9},
		RemoveFromWishlist{ProductID: "1"},
		ClearCart{},
	)
	assert.Equal(t, snapshot, before)
}

func TestReduce_UpdateQuantity(t *testing.T) {
	p := product(t, "6")
	state := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 1},
		UpdateQuantity{LineID: "a", Quantity: 4},
	)
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 4, state.Cart[0].Quantity)
	assertTotals(t, state)

	_, out := Reduce(state, UpdateQuantity{LineID: "a", Quantity: 2})
	assert.Nil(t, out.Notice, "quantity adjustments are silent")

	unchanged := reduceAll(state, UpdateQuantity{LineID: "missing", Quantity: 3})
	assert.Equal(t, state.Cart, unchanged.Cart)
}

func TestReduce_UpdateQuantityZeroEqualsRemove(t *testing.T) {
	p := product(t, "1")
	base := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: p, Quantity: 2},
		AddToCart{LineID: "b", Product: product(t, "2"), Quantity: 1},
	)

	for _, q := range []int{0, -3} {
		viaUpdate := reduceAll(base, UpdateQuantity{LineID: "a", Quantity: q})
		viaRemove := reduceAll(base, RemoveFromCart{LineID: "a"})
		assert.Equal(t, viaRemove, viaUpdate)
	}
}

func TestReduce_RemoveFromCart_MissingIsNoop(t *testing.T) {
	base := reduceAll(domain.NewAppState(), AddToCart{LineID: "a", Product: product(t, "1"), Quantity: 1})
	next, out := Reduce(base, RemoveFromCart{LineID: "zzz"})
	assert.Equal(t, base.Cart, next.Cart)
	require.NotNil(t, out.Notice)
	assert.Equal(t, domain.LevelInfo, out.Notice.Level)
}

func TestReduce_ClearCart(t *testing.T) {
	base := reduceAll(domain.NewAppState(),
		AddToCart{LineID: "a", Product: product(t, "1"), Quantity: 1},
		AddToCart{LineID: "b", Product: product(t, "2"), Quantity: 1},
	)
	next, out := Reduce(base, ClearCart{})
	assert.NotNil(t, next.Cart)
	assert.Empty(t, next.Cart)
	assert.Equal(t, SliceCart, out.Changed)
	assert.Equal(t, "Keranjang dikosongkan", out.Notice.Message)
}

func TestReduce_AddToWishlist_Idempotent(t *testing.T) {
	p := product(t, "2")
	added := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	first, out := Reduce(domain.NewAppState(), AddToWishlist{EntryID: "w1", Product: p, AddedAt: added})
	require.Len(t, first.Wishlist, 1)
	assert.False(t, out.Duplicate)
	assert.Equal(t, SliceWishlist, out.Changed)
	assert.Equal(t, added, first.Wishlist[0].AddedAt)

	second, out := Reduce(first, AddToWishlist{EntryID: "w2", Product: p, AddedAt: added})
	assert.Len(t, second.Wishlist, 1)
	assert.True(t, out.Duplicate)
	assert.Zero(t, out.Changed)
	require.NotNil(t, out.Notice)
	assert.Equal(t, domain.LevelWarning, out.Notice.Level)
	assert.Equal(t, "w1", second.Wishlist[0].ID)
}

func TestReduce_RemoveFromWishlist(t *testing.T) {
	state := reduceAll(domain.NewAppState(),
		AddToWishlist{EntryID: "w1", Product: product(t, "1")},
		AddToWishlist{EntryID: "w2", Product: product(t, "2")},
	)

	next, out := Reduce(state, RemoveFromWishlist{ProductID: "1"})
	require.Len(t, next.Wishlist, 1)
	assert.Equal(t, "2", next.Wishlist[0].ProductID)
	assert.Equal(t, domain.LevelInfo, out.Notice.Level)

	_, out = Reduce(next, RemoveFromWishlist{ProductID: "nope"})
	require.NotNil(t, out.Notice, "removal notifies even when nothing was saved")
}

func TestReduce_FieldSetters(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "budi@example.com"}
	msg := "gagal memuat"

	state, out := Reduce(domain.NewAppState(), SetUser{User: user})
	assert.Equal(t, SliceUser, out.Changed)
	assert.Nil(t, out.Notice)
	require.NotNil(t, state.User)
	assert.NotSame(t, user, state.User)

	state, out = Reduce(state, SetLoading{Loading: true})
	assert.True(t, state.IsLoading)
	assert.Zero(t, out.Changed)

	state, _ = Reduce(state, SetError{Message: &msg})
	require.NotNil(t, state.Error)
	assert.Equal(t, msg, *state.Error)

	state, _ = Reduce(state, SetError{})
	assert.Nil(t, state.Error)

	state, out = Reduce(state, SetUser{})
	assert.Nil(t, state.User)
	assert.Equal(t, SliceUser, out.Changed)
}

func TestReduce_LoadCartNormalizes(t *testing.T) {
	items := []domain.CartItem{
		{ID: "a", ProductID: "1", Price: 100, Quantity: 3, TotalPrice: 1},
		{ID: "b", ProductID: "2", Price: 100, Quantity: 0},
	}
	state, out := Reduce(domain.NewAppState(), LoadCart{Items: items})
	require.Len(t, state.Cart, 1)
	assert.Equal(t, int64(300), state.Cart[0].TotalPrice)
	assert.Zero(t, out.Changed)
}

func TestReduce_LoadWishlistDropsDuplicates(t *testing.T) {
	items := []domain.WishlistItem{
		{ID: "w1", ProductID: "1"},
		{ID: "w2", ProductID: "1"},
		{ID: "w3", ProductID: "2"},
	}
	state, _ := Reduce(domain.NewAppState(), LoadWishlist{Items: items})
	require.Len(t, state.Wishlist, 2)
	assert.Equal(t, "w1", state.Wishlist[0].ID)
}

func TestReduce_TotalsHoldAfterEveryMutation(t *testing.T) {
	p1, p2 := product(t, "1"), product(t, "5")
	actions := []Action{
		AddToCart{LineID: "a", Product: p1, Quantity: 2},
		AddToCart{LineID: "b", Product: p2, Quantity: 1, Variants: map[string]string{"color": "Hitam"}},
		UpdateQuantity{LineID: "b", Quantity: 7},
		AddToCart{LineID: "c", Product: p1, Quantity: 4},
		RemoveFromCart{LineID: "a"},
		AddToCart{LineID: "d", Product: p1, Quantity: 1},
		UpdateQuantity{LineID: "d", Quantity: 0},
	}

	state := domain.NewAppState()
	for _, a := range actions {
		state, _ = Reduce(state, a)
		assertTotals(t, state)
	}
	require.Len(t, state.Cart, 1)
	assert.Equal(t, 7, state.Cart[0].Quantity)
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "add_to_cart", ActionName(AddToCart{}))
	assert.Equal(t, "remove_from_wishlist", ActionName(RemoveFromWishlist{}))
	assert.Equal(t, "load_cart", ActionName(LoadCart{}))
}
