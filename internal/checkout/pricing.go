package checkout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FItraRizky/fro/internal/domain"
	apperrors "github.com/FItraRizky/fro/pkg/errors"
)

// Shipping cost multipliers by destination.
var (
	localShippingRate  = decimal.NewFromInt(1)
	remoteShippingRate = decimal.NewFromFloat(1.5)
)

// localCity is the destination shipped at the base rate.
const localCity = "jakarta"

var hundred = decimal.NewFromInt(100)

// QuoteRequest selects the promo code and delivery of an order.
type QuoteRequest struct {
	PromoCode        string `json:"promo_code,omitempty" validate:"omitempty,max=32"`
	ShippingMethodID string `json:"shipping_method_id,omitempty"`
	Location         string `json:"location,omitempty" validate:"omitempty,max=128"`
}

// Summary is the priced order. All amounts are whole rupiah.
type Summary struct {
	Subtotal       int64                  `json:"subtotal"`
	Discount       int64                  `json:"discount"`
	ShippingCost   int64                  `json:"shipping_cost"`
	Total          int64                  `json:"total"`
	ItemCount      int                    `json:"item_count"`
	AppliedPromo   string                 `json:"applied_promo,omitempty"`
	ShippingMethod *domain.ShippingMethod `json:"shipping_method,omitempty"`
	Location       string                 `json:"location,omitempty"`
}

// Pricer computes order summaries from promo codes and shipping methods.
type Pricer struct {
	promos  []domain.PromoCode
	methods []domain.ShippingMethod
	now     func() time.Time
}

// NewPricer creates a pricer. now decides promo expiry.
func NewPricer(promos []domain.PromoCode, methods []domain.ShippingMethod, now func() time.Time) *Pricer {
	if now == nil {
		now = time.Now
	}
	return &Pricer{promos: promos, methods: methods, now: now}
}

// ShippingMethods returns the available delivery options.
func (p *Pricer) ShippingMethods() []domain.ShippingMethod {
	out := make([]domain.ShippingMethod, len(p.methods))
	copy(out, p.methods)
	return out
}

// ShippingMethod returns the method with the given ID.
func (p *Pricer) ShippingMethod(id string) (domain.ShippingMethod, error) {
	for _, m := range p.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.ShippingMethod{}, apperrors.NotFound("shipping method", id)
}

// Promo returns the promo for code if it can be applied to an order of
// subtotal rupiah at the current time. Codes match case-insensitively.
func (p *Pricer) Promo(code string, subtotal int64) (domain.PromoCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, promo := range p.promos {
		if promo.Code != code {
			continue
		}
		switch {
		case !promo.IsActive:
			return domain.PromoCode{}, apperrors.InvalidInput("Kode promo tidak valid atau sudah kedaluwarsa")
		case promo.ExpiresAt != nil && p.now().After(*promo.ExpiresAt):
			return domain.PromoCode{}, apperrors.InvalidInput("Kode promo tidak valid atau sudah kedaluwarsa")
		case promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit:
			return domain.PromoCode{}, apperrors.InvalidInput("Kode promo sudah mencapai batas penggunaan")
		case subtotal < promo.MinOrderAmount:
			return domain.PromoCode{}, apperrors.InvalidInput("Belanja belum mencapai minimum untuk kode promo ini")
		}
		return promo, nil
	}
	return domain.PromoCode{}, apperrors.InvalidInput("Kode promo tidak valid atau sudah kedaluwarsa")
}

// Discount returns the discount promo grants on subtotal. Percentage
// discounts are capped by MaxDiscount when set; no discount exceeds the
// subtotal.
func Discount(promo domain.PromoCode, subtotal int64) int64 {
	sub := decimal.NewFromInt(subtotal)

	var d decimal.Decimal
	switch promo.Type {
	case domain.PromoPercentage:
		d = sub.Mul(decimal.NewFromInt(promo.Value)).Div(hundred)
		if promo.MaxDiscount > 0 {
			d = decimal.Min(d, decimal.NewFromInt(promo.MaxDiscount))
		}
	case domain.PromoFixed:
		d = decimal.NewFromInt(promo.Value)
	}
	return decimal.Min(d, sub).Round(0).IntPart()
}

// ShippingCost prices method for a destination. Jakarta ships at the base
// price, elsewhere at one and a half times it. Without a destination the
// cost is not known yet and is 0.
func ShippingCost(method domain.ShippingMethod, location string) int64 {
	location = strings.TrimSpace(location)
	if location == "" {
		return 0
	}
	rate := remoteShippingRate
	if strings.Contains(strings.ToLower(location), localCity) {
		rate = localShippingRate
	}
	return decimal.NewFromInt(method.Price).Mul(rate).Round(0).IntPart()
}

// Quote prices cart. An empty promo code or shipping method applies none.
func (p *Pricer) Quote(cart []domain.CartItem, req QuoteRequest) (Summary, error) {
	var s Summary
	for _, item := range cart {
		s.Subtotal += item.TotalPrice
		s.ItemCount += item.Quantity
	}

	if strings.TrimSpace(req.PromoCode) != "" {
		promo, err := p.Promo(req.PromoCode, s.Subtotal)
		if err != nil {
			return Summary{}, err
		}
		s.AppliedPromo = promo.Code
		s.Discount = Discount(promo, s.Subtotal)
	}

	if req.ShippingMethodID != "" {
		method, err := p.ShippingMethod(req.ShippingMethodID)
		if err != nil {
			return Summary{}, apperrors.InvalidInput("unknown shipping method " + req.ShippingMethodID)
		}
		s.ShippingMethod = &method
		s.Location = strings.TrimSpace(req.Location)
		s.ShippingCost = ShippingCost(method, s.Location)
	}

	s.Total = s.Subtotal - s.Discount + s.ShippingCost
	return s, nil
}
