package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/pkg/logger"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Center holds the transient notifications of one session. Each notification
// is removed automatically once its TTL elapses; notifications coexist and
// expire independently. Center is safe for concurrent use.
type Center struct {
	mu     sync.Mutex
	items  []domain.Notification
	timers map[string]*time.Timer
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
	closed bool
}

// Option configures a Center.
type Option func(*Center)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

// WithClock overrides the clock used for CreatedAt and ExpiresAt.
func WithClock(now func() time.Time) Option {
	return func(c *Center) { c.now = now }
}

// New creates a notification center.
func New(log *slog.Logger, opts ...Option) *Center {
	c := &Center{
		timers: make(map[string]*time.Timer),
		ttl:    DefaultTTL,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify shows message at level and schedules its dismissal.
func (c *Center) Notify(ctx context.Context, message string, level domain.NotificationLevel) {
	now := c.now()
	n := domain.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Level:     level,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "notification",
		slog.String("notification_id", n.ID),
		slog.String("level", string(level)),
		slog.String("message", message),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.items = append(c.items, n)
	c.timers[n.ID] = time.AfterFunc(c.ttl, func() { c.Dismiss(n.ID) })
}

// Active returns the visible notifications, oldest first.
func (c *Center) Active() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Dismiss removes a notification before its TTL elapses. It reports whether
// the notification was still visible.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Close stops every pending dismissal timer and drops all notifications.
// Later calls to Notify are ignored.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
	c.closed = true
}
