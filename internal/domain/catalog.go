package domain

import "time"

// Category is a catalog section addressed by its slug.
type Category struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description,omitempty"`
	Image        string     `json:"image,omitempty"`
	ParentID     string     `json:"parent_id,omitempty"`
	Children     []Category `json:"children,omitempty"`
	ProductCount int        `json:"product_count"`
	IsActive     bool       `json:"is_active"`
}

// Review is a shopper review of a product.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	Verified   bool      `json:"verified"`
	Helpful    int       `json:"helpful"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShippingMethod is a delivery option with a base price in rupiah.
type ShippingMethod struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	EstimatedDays int    `json:"estimated_days"`
	Carrier       string `json:"carrier"`
}

// Promo code types.
const (
	PromoPercentage = "percentage"
	PromoFixed      = "fixed"
)

// PromoCode is a discount a shopper can apply to the cart.
type PromoCode struct {
	ID             string     `json:"id"`
	Code           string     `json:"code"`
	Type           string     `json:"type"`
	Value          int64      `json:"value"`
	MinOrderAmount int64      `json:"min_order_amount,omitempty"`
	MaxDiscount    int64      `json:"max_discount,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	UsageLimit     int        `json:"usage_limit,omitempty"`
	UsedCount      int        `json:"used_count"`
	IsActive       bool       `json:"is_active"`
}
