package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/FItraRizky/fro/internal/domain"
	"github.com/FItraRizky/fro/internal/event"
	"github.com/FItraRizky/fro/internal/store"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/logger"
	"github.com/FItraRizky/fro/pkg/validator"
)

// Default delays of the simulated remote calls.
const (
	DefaultSubmitDelay     = 3 * time.Second
	DefaultNewsletterDelay = time.Second
)

// Shopper-facing messages.
const (
	msgOrderPlaced      = "Pesanan berhasil dibuat! Terima kasih atas pembelian Anda."
	msgOrderFailed      = "Terjadi kesalahan saat memproses pesanan. Silakan coba lagi."
	msgPromoApplied     = "Kode promo %s berhasil diterapkan!"
	msgShippingQuoted   = "Ongkos kirim berhasil dihitung"
	msgNewsletterEmpty  = "Masukkan alamat email yang valid"
	msgNewsletterJoined = "Terima kasih! Anda telah berlangganan newsletter kami."
)

// Cart is the part of a session store checkout works with.
type Cart interface {
	State() domain.AppState
	ClearCart(ctx context.Context) domain.AppState
}

// Confirmation is returned for a placed order.
type Confirmation struct {
	OrderID   string            `json:"order_id"`
	OrderDate time.Time         `json:"order_date"`
	Form      Form              `json:"customer"`
	Summary   Summary           `json:"summary"`
	Items     []domain.CartItem `json:"items"`
}

// Config tunes the checkout service.
type Config struct {
	SubmitDelay     time.Duration
	NewsletterDelay time.Duration
	// FailureRate is the probability in [0, 1] that a submission fails.
	FailureRate float64
}

// Service prices carts, places orders after a simulated payment delay and
// handles newsletter sign-ups.
type Service struct {
	pricer    *Pricer
	publisher event.Publisher
	logger    *slog.Logger
	cfg       Config
	now       func() time.Time
	fail      func() bool

	mu      sync.Mutex
	pending map[string]*Submission
	tasks   map[*Task]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for order IDs and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithFailureFunc overrides the decision whether a submission fails.
func WithFailureFunc(fn func() bool) Option {
	return func(s *Service) { s.fail = fn }
}

// WithPublisher sets the publisher of order.placed events.
func WithPublisher(p event.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// NewService creates a checkout service.
func NewService(pricer *Pricer, cfg Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg.SubmitDelay <= 0 {
		cfg.SubmitDelay = DefaultSubmitDelay
	}
	if cfg.NewsletterDelay <= 0 {
		cfg.NewsletterDelay = DefaultNewsletterDelay
	}
	s := &Service{
		pricer:    pricer,
		publisher: event.Noop{},
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		pending:   make(map[string]*Submission),
		tasks:     make(map[*Task]struct{}),
	}
	s.fail = func() bool { return s.cfg.FailureRate > 0 && rand.Float64() < s.cfg.FailureRate }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pricer returns the pricer behind the service.
func (s *Service) Pricer() *Pricer {
	return s.pricer
}

// Quote prices the session cart and tells the shopper when a promo code or a
// shipping estimate was applied. An unusable promo code is reported to the
// shopper as an error notification and returned as invalid input.
func (s *Service) Quote(ctx context.Context, cart Cart, notifier store.Notifier, req QuoteRequest) (Summary, error) {
	if err := validator.Validate(req); err != nil {
		return Summary{}, err
	}

	summary, err := s.pricer.Quote(cart.State().Cart, req)
	if err != nil {
		notifier.Notify(ctx, errorMessage(err), domain.LevelError)
		return Summary{}, err
	}

	if summary.AppliedPromo != "" {
		notifier.Notify(ctx, fmt.Sprintf(msgPromoApplied, summary.AppliedPromo), domain.LevelSuccess)
	}
	if summary.ShippingMethod != nil && summary.Location != "" {
		notifier.Notify(ctx, msgShippingQuoted, domain.LevelSuccess)
	}
	return summary, nil
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Submission is an order waiting for its simulated payment.
type Submission struct {
	task   *Task
	result chan submissionResult
	once   sync.Once
	final  submissionResult
}

type submissionResult struct {
	conf Confirmation
	err  error
}

func (sub *Submission) finish(conf Confirmation, err error) {
	sub.result <- submissionResult{conf: conf, err: err}
}

// Wait blocks until the order completes or ctx ends. When ctx ends first the
// submission is cancelled: the cart is kept and the shopper is not notified.
func (sub *Submission) Wait(ctx context.Context) (Confirmation, error) {
	select {
	case <-sub.task.Done():
	case <-ctx.Done():
		if sub.task.Cancel() {
			return Confirmation{}, ctx.Err()
		}
		<-sub.task.Done()
	}
	sub.once.Do(func() {
		select {
		case sub.final = <-sub.result:
		default:
			sub.final = submissionResult{err: context.Canceled}
		}
	})
	return sub.final.conf, sub.final.err
}

// Cancel abandons the submission. It reports false when the payment already
// completed.
func (sub *Submission) Cancel() bool {
	return sub.task.Cancel()
}

// Submit validates the form, prices the cart and places the order once the
// payment delay elapsed. On success the cart is cleared exactly once and the
// shopper is notified; a failed payment leaves the cart intact so the order
// can be resubmitted. Only one submission per session may be pending.
func (s *Service) Submit(ctx context.Context, sessionID string, cart Cart, notifier store.Notifier, form Form, req QuoteRequest) (*Submission, error) {
	form = form.Normalize()
	if err := validator.Validate(form); err != nil {
		return nil, err
	}

	state := cart.State()
	if len(state.Cart) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	summary, err := s.pricer.Quote(state.Cart, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[sessionID]; busy {
		return nil, apperrors.Conflict("an order is already being processed for this session")
	}

	// The payment outlives the request; keep its values but not its deadline.
	bg := context.WithoutCancel(ctx)
	sub := &Submission{result: make(chan submissionResult, 1)}
	sub.task = Defer(s.cfg.SubmitDelay, func() {
		s.mu.Lock()
		delete(s.pending, sessionID)
		s.mu.Unlock()

		conf, err := s.complete(bg, sessionID, cart, notifier, form, summary, state.Cart)
		sub.finish(conf, err)
	})
	s.pending[sessionID] = sub

	go func() {
		<-sub.task.Done()
		if sub.task.Cancelled() {
			s.mu.Lock()
			if s.pending[sessionID] == sub {
				delete(s.pending, sessionID)
			}
			s.mu.Unlock()
			logger.WithContext(bg, s.logger).InfoContext(bg, "order submission abandoned")
		}
	}()

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "order submitted",
		slog.Int64("total", summary.Total),
		slog.String("payment_method", form.PaymentMethod),
	)
	return sub, nil
}

func (s *Service) complete(ctx context.Context, sessionID string, cart Cart, notifier store.Notifier, form Form, summary Summary, items []domain.CartItem) (Confirmation, error) {
	log := logger.WithContext(ctx, s.logger)

	if s.fail() {
		notifier.Notify(ctx, msgOrderFailed, domain.LevelError)
		log.WarnContext(ctx, "simulated payment failure")
		return Confirmation{}, apperrors.PaymentFailed(msgOrderFailed)
	}

	now := s.now().UTC()
	conf := Confirmation{
		OrderID:   fmt.Sprintf("FRO-%d", now.UnixMilli()),
		OrderDate: now,
		Form:      form.Masked(),
		Summary:   summary,
		Items:     items,
	}

	cart.ClearCart(ctx)
	notifier.Notify(ctx, msgOrderPlaced, domain.LevelSuccess)

	err := s.publisher.OrderPlaced(ctx, sessionID, event.OrderPlacedData{
		OrderID:       conf.OrderID,
		Email:         form.Email,
		PaymentMethod: form.PaymentMethod,
		ItemCount:     summary.ItemCount,
		Subtotal:      summary.Subtotal,
		Discount:      summary.Discount,
		ShippingCost:  summary.ShippingCost,
		Total:         summary.Total,
	})
	if err != nil {
		log.WarnContext(ctx, "failed to publish order event", slog.String("error", err.Error()))
	}

	log.InfoContext(ctx, "order placed",
		slog.String("order_id", conf.OrderID),
		slog.Int64("total", summary.Total),
	)
	return conf, nil
}

// Pending reports whether sessionID has an order in progress.
func (s *Service) Pending(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[sessionID]
	return ok
}

// Subscribe signs email up for the newsletter. The confirmation is shown to
// the shopper once the sign-up delay elapsed.
func (s *Service) Subscribe(ctx context.Context, notifier store.Notifier, email string) (*Task, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		notifier.Notify(ctx, msgNewsletterEmpty, domain.LevelWarning)
		return nil, apperrors.InvalidInput("email is required")
	}
	if err := validator.Var("email", email, "email"); err != nil {
		notifier.Notify(ctx, msgNewsletterEmpty, domain.LevelWarning)
		return nil, err
	}

	bg := context.WithoutCancel(ctx)
	var task *Task
	s.mu.Lock()
	defer s.mu.Unlock()
	task = Defer(s.cfg.NewsletterDelay, func() {
		notifier.Notify(bg, msgNewsletterJoined, domain.LevelSuccess)
		logger.WithContext(bg, s.logger).InfoContext(bg, "newsletter subscription", slog.String("email", email))

		s.mu.Lock()
		delete(s.tasks, task)
		s.mu.Unlock()
	})
	s.tasks[task] = struct{}{}
	return task, nil
}

// Close cancels every pending submission and sign-up.
func (s *Service) Close() {
	s.mu.Lock()
	subs := make([]*Submission, 0, len(s.pending))
	for _, sub := range s.pending {
		subs = append(subs, sub)
	}
	tasks := make([]*Task, 0, len(s.tasks))
	for t := range s.tasks {
		tasks = append(tasks, t)
	}
	s.tasks = make(map[*Task]struct{})
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
	for _, t := range tasks {
		t.Cancel()
	}
}
