package store

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/FItraRizky/fro/internal/event"
	"github.com/FItraRizky/fro/internal/notify"
	"github.com/FItraRizky/fro/internal/storage"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidSessionID reports whether id can name a session.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// Session is the open state of one shopper.
type Session struct {
	ID            string
	Store         *Store
	Notifications *notify.Center

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	NotificationTTL time.Duration
	Publisher       event.Publisher
	Clock           func() time.Time
}

// Registry opens one Store per session over a session-scoped view of the
// backing key-value store, so independent sessions never share state.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	kv     storage.KeyValue
	cfg    RegistryConfig
	logger *slog.Logger
}

// NewRegistry creates an empty registry over kv.
func NewRegistry(kv storage.KeyValue, cfg RegistryConfig, logger *slog.Logger) *Registry {
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = notify.DefaultTTL
	}
	if cfg.Publisher == nil {
		cfg.Publisher = event.Noop{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Registry{
		sessions: make(map[string]*Session),
		kv:       kv,
		cfg:      cfg,
		logger:   logger,
	}
}

// Get returns the session for id, opening and hydrating it on first use.
// Hydration runs outside the registry lock so a slow backend only delays
// the session being opened.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidSessionID(id) {
		return nil, apperrors.InvalidInput("session id must be 1-128 characters of letters, digits, '-' or '_'")
	}

	if sess, ok := r.lookup(id); ok {
		return sess, nil
	}

	center := notify.New(r.logger, notify.WithTTL(r.cfg.NotificationTTL), notify.WithClock(r.cfg.Clock))
	st := Open(ctx, storage.Scoped(r.kv, storage.SessionPrefix(id)), center, r.logger,
		WithSessionID(id),
		WithPublisher(r.cfg.Publisher),
		WithClock(r.cfg.Clock),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.cfg.Clock()
	if sess, ok := r.sessions[id]; ok {
		// Lost a race with a concurrent first request; the unused store
		// never wrote anything.
		center.Close()
		sess.touch(now)
		return sess, nil
	}
	sess := &Session{ID: id, Store: st, Notifications: center, lastSeen: now}
	r.sessions[id] = sess
	activeSessions.Inc()

	r.logger.DebugContext(ctx, "session opened", slog.String("session_id", id))
	return sess, nil
}

func (r *Registry) lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if ok {
		sess.touch(r.cfg.Clock())
	}
	return sess, ok
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than maxIdle and returns how many it
// closed. Their persisted state is kept, so a returning shopper is hydrated
// again on the next Get.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.cfg.Clock().Add(-maxIdle)
	closed := 0
	for id, sess := range r.sessions {
		if sess.idleSince().Before(cutoff) {
			sess.Notifications.Close()
			delete(r.sessions, id)
			activeSessions.Dec()
			closed++
		}
	}
	return closed
}

// Close closes every open session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, sess := range r.sessions {
		sess.Notifications.Close()
		delete(r.sessions, id)
		activeSessions.Dec()
	}
}
