package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/internal/event"
	"github.com/FItraRizky/fro/internal/storage"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/logger"
)

// Notifier shows a transient message to the shopper.
type Notifier interface {
	Notify(ctx context.Context, message string, level domain.NotificationLevel)
}

// Store owns the state of one shopping session. Every mutation goes through
// Dispatch, runs to completion under a mutex and is followed by a synchronous
// write of each changed slice. Readers get deep copies.
type Store struct {
	mu    sync.Mutex
	state domain.AppState

	sessionID string
	kv        storage.KeyValue
	notifier  Notifier
	publisher event.Publisher
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithSessionID tags logs and events with the owning session.
func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

// WithPublisher sets the event publisher. Events are dropped by default.
func WithPublisher(p event.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

// WithClock overrides the clock used for wishlist timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the generator of cart line and wishlist IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open creates a store over kv and seeds it from the persisted cart,
// wishlist and user. Each key loads independently: a missing or unreadable
// entry leaves that part empty and never affects the others. Loading ignores
// cancellation of ctx; an empty store would overwrite the persisted state on
// its next write.
func Open(ctx context.Context, kv storage.KeyValue, notifier Notifier, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		state:     domain.NewAppState(),
		kv:        kv,
		notifier:  notifier,
		publisher: event.Noop{},
		logger:    log,
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	ctx = context.WithoutCancel(ctx)
	var cart []domain.CartItem
	if s.load(ctx, storage.KeyCart, &cart) {
		s.state, _ = Reduce(s.state, LoadCart{Items: cart})
	}

	var wishlist []domain.WishlistItem
	if s.load(ctx, storage.KeyWishlist, &wishlist) {
		s.state, _ = Reduce(s.state, LoadWishlist{Items: wishlist})
	}

	var user *domain.User
	if s.load(ctx, storage.KeyUser, &user) {
		s.state, _ = Reduce(s.state, SetUser{User: user})
	}

	return s
}

func (s *Store) load(ctx context.Context, key string, target any) bool {
	log := logger.WithContext(ctx, s.logger)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !storage.IsNotFound(err) {
			loadFailuresTotal.WithLabelValues(key).Inc()
			log.WarnContext(ctx, "failed to read persisted state",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if err := json.Unmarshal(raw, target); err != nil {
		loadFailuresTotal.WithLabelValues(key).Inc()
		log.WarnContext(ctx, "ignoring corrupt persisted state",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// Dispatch applies an action, persists what changed, then emits the
// action's notification and domain events. It returns the outcome and a
// snapshot of the resulting state.
func (s *Store) Dispatch(ctx context.Context, action Action) (Outcome, domain.AppState) {
	name := ActionName(action)
	ctx, span := otel.Tracer("fro/store").Start(ctx, "store.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("store.action", name))

	s.mu.Lock()
	next, out := Reduce(s.state, action)
	s.state = next
	// The change is already applied, so it is written even if the caller
	// has gone away.
	s.persist(context.WithoutCancel(ctx), out.Changed, next)
	snapshot := next.Clone()
	s.mu.Unlock()

	actionsTotal.WithLabelValues(name).Inc()
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "store action",
		slog.String("action", name),
		slog.Bool("duplicate", out.Duplicate),
		slog.Int("cart_lines", len(snapshot.Cart)),
		slog.Int("wishlist_entries", len(snapshot.Wishlist)),
	)

	if out.Notice != nil && s.notifier != nil {
		s.notifier.Notify(ctx, out.Notice.Message, out.Notice.Level)
	}
	s.publish(ctx, action, out, snapshot)

	return out, snapshot
}

// persist writes each changed slice. Write failures are logged; the
// in-memory change stands.
func (s *Store) persist(ctx context.Context, changed Slice, state domain.AppState) {
	if changed.Has(SliceCart) {
		s.write(ctx, storage.KeyCart, state.Cart)
	}
	if changed.Has(SliceWishlist) {
		s.write(ctx, storage.KeyWishlist, state.Wishlist)
	}
	if changed.Has(SliceUser) {
		if state.User == nil {
			if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
				s.persistFailed(ctx, storage.KeyUser, err)
			}
			return
		}
		s.write(ctx, storage.KeyUser, state.User)
	}
}

func (s *Store) write(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.persistFailed(ctx, key, fmt.Errorf("marshal %s: %w", key, err))
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.persistFailed(ctx, key, err)
	}
}

func (s *Store) persistFailed(ctx context.Context, key string, err error) {
	persistErrorsTotal.WithLabelValues(key).Inc()
	logger.WithContext(ctx, s.logger).ErrorContext(ctx, "failed to persist state",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

func (s *Store) publish(ctx context.Context, action Action, out Outcome, state domain.AppState) {
	var err error
	switch action.(type) {
	case ClearCart:
		err = s.publisher.CartCleared(ctx, s.sessionID)
	default:
		switch {
		case out.Changed.Has(SliceCart):
			err = s.publisher.CartUpdated(ctx, s.sessionID, state.Cart)
		case out.Changed.Has(SliceWishlist):
			err = s.publisher.WishlistUpdated(ctx, s.sessionID, state.Wishlist)
		}
	}
	if err != nil {
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "failed to publish store event",
			slog.String("action", ActionName(action)),
			slog.String("error", err.Error()),
		)
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SessionID returns the session the store belongs to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// AddToCart adds quantity units of product with the given variant selection
// and returns the resulting line. A quantity below 1 adds one unit. Repeated
// adds of the same product and selection grow one line; its unit price stays
// the one captured first.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int, variants map[string]string) (domain.CartItem, error) {
	if product.ID == "" {
		return domain.CartItem{}, apperrors.InvalidInput("product id is required")
	}

	_, state := s.Dispatch(ctx, AddToCart{
		LineID:   s.newID(),
		Product:  product,
		Quantity: quantity,
		Variants: variants,
	})
	for _, item := range state.Cart {
		if item.Matches(product.ID, variants) {
			return item, nil
		}
	}
	return domain.CartItem{}, apperrors.Internal(fmt.Errorf("cart line for product %s missing after add", product.ID))
}

// RemoveFromCart deletes a line. Removing an unknown line is not an error.
func (s *Store) RemoveFromCart(ctx context.Context, lineID string) domain.AppState {
	_, state := s.Dispatch(ctx, RemoveFromCart{LineID: lineID})
	return state
}

// UpdateCartQuantity sets the quantity of a line; zero or less removes it.
func (s *Store) UpdateCartQuantity(ctx context.Context, lineID string, quantity int) domain.AppState {
	_, state := s.Dispatch(ctx, UpdateQuantity{LineID: lineID, Quantity: quantity})
	return state
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) domain.AppState {
	_, state := s.Dispatch(ctx, ClearCart{})
	return state
}

// AddToWishlist saves product. It reports false, with a warning shown to the
// shopper, when the product was already saved.
func (s *Store) AddToWishlist(ctx context.Context, product domain.Product) (bool, error) {
	if product.ID == "" {
		return false, apperrors.InvalidInput("product id is required")
	}
	out, _ := s.Dispatch(ctx, AddToWishlist{
		EntryID: s.newID(),
		Product: product,
		AddedAt: s.now().UTC(),
	})
	return !out.Duplicate, nil
}

// RemoveFromWishlist deletes the entry for productID.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) domain.AppState {
	_, state := s.Dispatch(ctx, RemoveFromWishlist{ProductID: productID})
	return state
}

// SetUser replaces the signed-in user; nil signs out and deletes the
// persisted user.
func (s *Store) SetUser(ctx context.Context, user *domain.User) domain.AppState {
	_, state := s.Dispatch(ctx, SetUser{User: user})
	return state
}

// SetLoading replaces the loading flag.
func (s *Store) SetLoading(ctx context.Context, loading bool) {
	s.Dispatch(ctx, SetLoading{Loading: loading})
}

// SetError replaces the error message; nil clears it.
func (s *Store) SetError(ctx context.Context, message *string) {
	s.Dispatch(ctx, SetError{Message: message})
}
