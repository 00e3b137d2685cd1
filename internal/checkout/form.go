package checkout

import (
	"fmt"
	"strings"

	apperrors "github.com/FItraRizky/fro/pkg/errors"
	"github.com/FItraRizky/fro/pkg/validator"
)

// Payment methods accepted at checkout.
const (
	PaymentCreditCard   = "credit-card"
	PaymentBankTransfer = "bank-transfer"
	PaymentEWallet      = "e-wallet"
)

// Checkout steps. The review step validates the whole form.
const (
	StepShipping = 1
	StepPayment  = 2
	StepReview   = 3
)

// Form is the checkout form. Card fields are required only when paying by
// credit card.
type Form struct {
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=20"`

	Address    string `json:"address" validate:"required,max=256"`
	City       string `json:"city" validate:"required,max=64"`
	Province   string `json:"province" validate:"required,max=64"`
	PostalCode string `json:"postal_code" validate:"required,numeric,len=5"`
	Country    string `json:"country"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit-card bank-transfer e-wallet"`
	CardNumber    string `json:"card_number,omitempty" validate:"required_if=PaymentMethod credit-card"`
	ExpiryDate    string `json:"expiry_date,omitempty" validate:"required_if=PaymentMethod credit-card"`
	CVV           string `json:"cvv,omitempty" validate:"required_if=PaymentMethod credit-card"`
	CardName      string `json:"card_name,omitempty" validate:"required_if=PaymentMethod credit-card"`

	Notes      string `json:"notes,omitempty" validate:"max=500"`
	SaveInfo   bool   `json:"save_info"`
	Newsletter bool   `json:"newsletter"`
}

var stepFields = map[int][]string{
	StepShipping: {"FirstName", "LastName", "Email", "Phone", "Address", "City", "Province", "PostalCode"},
	StepPayment:  {"PaymentMethod", "CardNumber", "ExpiryDate", "CVV", "CardName"},
}

// Normalize trims text fields and fills defaults.
func (f Form) Normalize() Form {
	for _, s := range []*string{
		&f.FirstName, &f.LastName, &f.Email, &f.Phone, &f.Address, &f.City,
		&f.Province, &f.PostalCode, &f.Country, &f.PaymentMethod,
		&f.CardNumber, &f.ExpiryDate, &f.CVV, &f.CardName,
	} {
		*s = strings.TrimSpace(*s)
	}
	if f.Country == "" {
		f.Country = "Indonesia"
	}
	if f.PaymentMethod == "" {
		f.PaymentMethod = PaymentCreditCard
	}
	return f
}

// ValidateStep validates the fields of one checkout step. The review step
// validates everything. A failed validation returns a
// *validator.ValidationError keyed by JSON field name.
func ValidateStep(f Form, step int) error {
	f = f.Normalize()
	switch step {
	case StepShipping, StepPayment:
		return validator.ValidatePartial(f, stepFields[step]...)
	case StepReview:
		return validator.Validate(f)
	default:
		return apperrors.InvalidInput(fmt.Sprintf("unknown checkout step %d", step))
	}
}

// Masked returns a copy safe to echo back: the card number keeps its last
// four digits and the CVV is dropped.
func (f Form) Masked() Form {
	f.CVV = ""
	if n := len(f.CardNumber); n > 4 {
		f.CardNumber = strings.Repeat("*", n-4) + f.CardNumber[n-4:]
	}
	return f
}
