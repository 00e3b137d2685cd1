package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/pkg/logger"
)

func TestCenter_NotifyAndExpire(t *testing.T) {
	c := New(logger.Discard(), WithTTL(30*time.Millisecond))
	t.Cleanup(c.Close)

	c.Notify(context.Background(), "Produk ditambahkan ke keranjang", domain.LevelSuccess)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Produk ditambahkan ke keranjang", active[0].Message)
	assert.Equal(t, domain.LevelSuccess, active[0].Level)
	assert.NotEmpty(t, active[0].ID)
	assert.Equal(t, 30*time.Millisecond, active[0].ExpiresAt.Sub(active[0].CreatedAt))

	assert.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestCenter_IndependentExpiry(t *testing.T) {
	c := New(logger.Discard(), WithTTL(time.Hour))
	t.Cleanup(c.Close)
	ctx := context.Background()

	c.Notify(ctx, "first", domain.LevelInfo)
	c.Notify(ctx, "second", domain.LevelWarning)
	c.Notify(ctx, "third", domain.LevelError)

	active := c.Active()
	require.Len(t, active, 3)
	assert.True(t, c.Dismiss(active[1].ID))
	assert.False(t, c.Dismiss(active[1].ID))

	remaining := c.Active()
	require.Len(t, remaining, 2)
	assert.Equal(t, "first", remaining[0].Message)
	assert.Equal(t, "third", remaining[1].Message)
}

func TestCenter_Clock(t *testing.T) {
	fixed := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	c := New(logger.Discard(), WithClock(func() time.Time { return fixed }))
	t.Cleanup(c.Close)

	c.Notify(context.Background(), "hi", domain.LevelInfo)
	n := c.Active()[0]
	assert.Equal(t, fixed, n.CreatedAt)
	assert.Equal(t, fixed.Add(DefaultTTL), n.ExpiresAt)
}

func TestCenter_CloseStopsTimers(t *testing.T) {
	c := New(logger.Discard(), WithTTL(time.Hour))
	c.Notify(context.Background(), "pending", domain.LevelInfo)

	c.Close()
	assert.Empty(t, c.Active())
	assert.Empty(t, c.timers)

	c.Notify(context.Background(), "late", domain.LevelInfo)
	assert.Empty(t, c.Active())
}
