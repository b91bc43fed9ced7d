// Package coupon validates discount codes and converts their percentage
// into the absolute amount the cart engine expects.
package coupon

import (
	"errors"
	"time"
)

// Coupon is a percentage discount code.
type Coupon struct {
	Code      string    `bson:"code" json:"code"`
	Percent   float64   `bson:"percent" json:"percent"`
	Active    bool      `bson:"active" json:"active"`
	ExpiresAt time.Time `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

var (
	ErrNotFound = errors.New("coupon: code not found")
	ErrInactive = errors.New("coupon: code inactive")
	ErrExpired  = errors.New("coupon: code expired")
)
