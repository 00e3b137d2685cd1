package http

import (
	"log/slog"
	"net/http"

	"github.com/FItraRizky/fro/internal/checkout"
	"github.com/FItraRizky/fro/pkg/httputil"
)

// CheckoutHandler serves pricing, checkout and newsletter sign-up.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// ValidateStepRequest is the body of POST /api/v1/checkout/validate.
type ValidateStepRequest struct {
	Step int           `json:"step"`
	Form checkout.Form `json:"form"`
}

// SubmitRequest is the body of POST /api/v1/checkout.
type SubmitRequest struct {
	Form  checkout.Form         `json:"form"`
	Quote checkout.QuoteRequest `json:"quote"`
}

// NewsletterRequest is the body of POST /api/v1/newsletter.
type NewsletterRequest struct {
	Email string `json:"email"`
}

// StepResponse reports a passed checkout step.
type StepResponse struct {
	Step int  `json:"step"`
	Next int  `json:"next,omitempty"`
	Done bool `json:"done"`
}

// --- Handlers ---

// Quote handles POST /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req checkout.QuoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	summary, err := h.service.Quote(r.Context(), sess.Store, sess.Notifications, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, summary)
}

// ValidateStep handles POST /api/v1/checkout/validate
func (h *CheckoutHandler) ValidateStep(w http.ResponseWriter, r *http.Request) {
	var req ValidateStepRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := checkout.ValidateStep(req.Form, req.Step); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := StepResponse{Step: req.Step, Done: req.Step == checkout.StepReview}
	if !resp.Done {
		resp.Next = req.Step + 1
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// Submit handles POST /api/v1/checkout. The request waits for the simulated
// payment; a client that goes away first abandons the order and keeps its
// cart.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	sub, err := h.service.Submit(r.Context(), sess.ID, sess.Store, sess.Notifications, req.Form, req.Quote)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	conf, err := sub.Wait(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, conf)
}

// Subscribe handles POST /api/v1/newsletter. The sign-up completes in the
// background; the shopper sees a notification when it does.
func (h *CheckoutHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req NewsletterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	sess := sessionFromContext(r.Context())
	if _, err := h.service.Subscribe(r.Context(), sess.Notifications, req.Email); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
