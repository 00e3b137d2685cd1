package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FItraRizky/fro/internal/catalog"
	"github.com/FItraRizky/fro/internal/domain"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/httputil"
)

// SessionHandler serves the cart, wishlist, user and notifications of the
// shopper session loaded by LoadSession.
type SessionHandler struct {
	catalog *catalog.Engine
	logger  *slog.Logger
}

// NewSessionHandler creates a session HTTP handler.
func NewSessionHandler(engine *catalog.Engine, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{catalog: engine, logger: logger}
}

// --- Request DTOs ---

// AddCartItemRequest is the body of POST /api/v1/cart/items. An omitted or
// zero quantity adds one unit.
type AddCartItemRequest struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity,omitempty" validate:"gte=0,lte=99"`
	Variants  map[string]string `json:"variants,omitempty"`
}

// UpdateQuantityRequest is the body of PUT /api/v1/cart/items/{lineId}.
// Zero removes the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=99"`
}

// AddWishlistRequest is the body of POST /api/v1/wishlist.
type AddWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetUserRequest is the body of PUT /api/v1/user.
type SetUserRequest struct {
	ID        string `json:"id" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"max=64"`
	Phone     string `json:"phone,omitempty" validate:"max=20"`
	Avatar    string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// --- Response DTOs ---

// StateResponse is the session state with derived cart figures.
type StateResponse struct {
	domain.AppState
	CartCount    int   `json:"cart_count"`
	CartSubtotal int64 `json:"cart_subtotal"`
}

// WishlistResponse reports whether the product was newly saved.
type WishlistResponse struct {
	Added bool          `json:"added"`
	State StateResponse `json:"state"`
}

func stateResponse(s domain.AppState) StateResponse {
	return StateResponse{AppState: s, CartCount: s.CartCount(), CartSubtotal: s.CartSubtotal()}
}

// --- Handlers ---

// GetState handles GET /api/v1/state
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	httputil.WriteData(w, http.StatusOK, stateResponse(sess.Store.State()))
}

// AddCartItem handles POST /api/v1/cart/items
func (h *SessionHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.Product(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := checkVariants(product, req.Variants); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	if _, err := sess.Store.AddToCart(r.Context(), product, req.Quantity, req.Variants); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, stateResponse(sess.Store.State()))
}

// checkVariants rejects selections the product does not offer.
func checkVariants(p domain.Product, variants map[string]string) error {
	for kind, value := range variants {
		if !p.HasVariant(kind, value) {
			return apperrors.InvalidInput(fmt.Sprintf("product %s has no %s %q", p.ID, kind, value))
		}
	}
	return nil
}

// UpdateCartItem handles PUT /api/v1/cart/items/{lineId}
func (h *SessionHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	lineID := chi.URLParam(r, "lineId")
	if domain.FindCartItem(sess.Store.State().Cart, lineID) < 0 {
		httputil.WriteError(w, r, apperrors.NotFound("cart item", lineID), h.logger)
		return
	}
	state := sess.Store.UpdateCartQuantity(r.Context(), lineID, req.Quantity)
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{lineId}
func (h *SessionHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	state := sess.Store.RemoveFromCart(r.Context(), chi.URLParam(r, "lineId"))
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// ClearCart handles DELETE /api/v1/cart
func (h *SessionHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	state := sess.Store.ClearCart(r.Context())
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// AddWishlistItem handles POST /api/v1/wishlist
func (h *SessionHandler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.Product(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	added, err := sess.Store.AddToWishlist(r.Context(), product)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	httputil.WriteData(w, status, WishlistResponse{Added: added, State: stateResponse(sess.Store.State())})
}

// RemoveWishlistItem handles DELETE /api/v1/wishlist/{productId}
func (h *SessionHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	state := sess.Store.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productId"))
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// SetUser handles PUT /api/v1/user
func (h *SessionHandler) SetUser(w http.ResponseWriter, r *http.Request) {
	var req SetUserRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	user := &domain.User{
		ID:        req.ID,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     req.Phone,
		Avatar:    req.Avatar,
		Addresses: []domain.Address{},
	}
	if current := sess.Store.State().User; current != nil && current.ID == user.ID {
		user.Addresses = current.Addresses
		user.RewardPoints = current.RewardPoints
		user.CreatedAt = current.CreatedAt
	}
	state := sess.Store.SetUser(r.Context(), user)
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// ClearUser handles DELETE /api/v1/user
func (h *SessionHandler) ClearUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	state := sess.Store.SetUser(r.Context(), nil)
	httputil.WriteData(w, http.StatusOK, stateResponse(state))
}

// Notifications handles GET /api/v1/notifications
func (h *SessionHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	httputil.WriteData(w, http.StatusOK, sess.Notifications.Active())
}

// DismissNotification handles DELETE /api/v1/notifications/{id}
func (h *SessionHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !sess.Notifications.Dismiss(id) {
		httputil.WriteError(w, r, apperrors.NotFound("notification", id), h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
