package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FItraRizky/fro/internal/domain"
	pkgkafka "github.com/FItraRizky/fro/pkg/kafka"
	"github.com/FItraRizky/fro/pkg/logger"
)

// Kafka topics for storefront events.
var (
	TopicCartUpdated     = pkgkafka.Topic("cart", "updated")
	TopicCartCleared     = pkgkafka.Topic("cart", "cleared")
	TopicWishlistUpdated = pkgkafka.Topic("wishlist", "updated")
	TopicOrderPlaced     = pkgkafka.Topic("order", "placed")
)

// AggregateTypeSession is the aggregate every storefront event belongs to.
const AggregateTypeSession = "session"

// Source identifies events published by the storefront.
const Source = "fro"

// Publisher emits storefront domain events.
type Publisher interface {
	CartUpdated(ctx context.Context, sessionID string, cart []domain.CartItem) error
	CartCleared(ctx context.Context, sessionID string) error
	WishlistUpdated(ctx context.Context, sessionID string, wishlist []domain.WishlistItem) error
	OrderPlaced(ctx context.Context, sessionID string, order OrderPlacedData) error
}

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	SessionID   string         `json:"session_id"`
	Items       []CartItemData `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount int64          `json:"total_amount"`
}

// CartItemData is one cart line within cart events.
type CartItemData struct {
	LineID    string            `json:"line_id"`
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	Variants  map[string]string `json:"variants,omitempty"`
	Price     int64             `json:"price"`
	Quantity  int               `json:"quantity"`
}

// CartClearedData is the payload of a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// WishlistUpdatedData is the payload of a wishlist.updated event.
type WishlistUpdatedData struct {
	SessionID  string   `json:"session_id"`
	ProductIDs []string `json:"product_ids"`
}

// OrderPlacedData is the payload of an order.placed event.
type OrderPlacedData struct {
	SessionID     string `json:"session_id"`
	OrderID       string `json:"order_id"`
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method"`
	ItemCount     int    `json:"item_count"`
	Subtotal      int64  `json:"subtotal"`
	Discount      int64  `json:"discount"`
	ShippingCost  int64  `json:"shipping_cost"`
	Total         int64  `json:"total"`
}

// Producer publishes storefront events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer over a Kafka producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// CartUpdated publishes a cart.updated event.
func (p *Producer) CartUpdated(ctx context.Context, sessionID string, cart []domain.CartItem) error {
	items := make([]CartItemData, len(cart))
	count := 0
	var total int64
	for i, item := range cart {
		items[i] = CartItemData{
			LineID:    item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Variants:  item.SelectedVariants,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		count += item.Quantity
		total += item.TotalPrice
	}

	data := CartUpdatedData{
		SessionID:   sessionID,
		Items:       items,
		ItemCount:   count,
		TotalAmount: total,
	}
	return p.publish(ctx, TopicCartUpdated, "cart.updated", sessionID, data)
}

// CartCleared publishes a cart.cleared event.
func (p *Producer) CartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, "cart.cleared", sessionID, CartClearedData{SessionID: sessionID})
}

// WishlistUpdated publishes a wishlist.updated event.
func (p *Producer) WishlistUpdated(ctx context.Context, sessionID string, wishlist []domain.WishlistItem) error {
	ids := make([]string, len(wishlist))
	for i, item := range wishlist {
		ids[i] = item.ProductID
	}
	data := WishlistUpdatedData{SessionID: sessionID, ProductIDs: ids}
	return p.publish(ctx, TopicWishlistUpdated, "wishlist.updated", sessionID, data)
}

// OrderPlaced publishes an order.placed event.
func (p *Producer) OrderPlaced(ctx context.Context, sessionID string, order OrderPlacedData) error {
	order.SessionID = sessionID
	return p.publish(ctx, TopicOrderPlaced, "order.placed", sessionID, order)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, sessionID string, data any) error {
	event, err := pkgkafka.NewEvent(eventType, sessionID, AggregateTypeSession, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("session_id", sessionID),
	)
	return nil
}

// Noop discards every event. It is used when Kafka is disabled.
type Noop struct{}

func (Noop) CartUpdated(context.Context, string, []domain.CartItem) error         { return nil }
func (Noop) CartCleared(context.Context, string) error                            { return nil }
func (Noop) WishlistUpdated(context.Context, string, []domain.WishlistItem) error { return nil }
func (Noop) OrderPlaced(context.Context, string, OrderPlacedData) error           { return nil }
