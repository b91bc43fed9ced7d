package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Service validates discount codes against the current cart subtotal.
type Service interface {
	// Validate resolves code into an absolute discount amount for the given
	// subtotal. The percentage-to-amount conversion happens here, before the
	// cart ever sees the discount.
	Validate(ctx context.Context, code string, subtotal float64) (float64, *Coupon, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a coupon Service on top of repo.
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Validate(ctx context.Context, code string, subtotal float64) (float64, *Coupon, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return 0, nil, ErrNotFound
	}

	coupon, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil, ErrNotFound
		}
		log.Error().Err(err).Str("code", code).Msg("service: failed to fetch coupon")
		return 0, nil, fmt.Errorf("service: failed to fetch coupon: %w", err)
	}

	if !coupon.Active {
		return 0, nil, ErrInactive
	}
	if !coupon.ExpiresAt.IsZero() && s.now().After(coupon.ExpiresAt) {
		return 0, nil, ErrExpired
	}

	amount := 0.0
	if subtotal > 0 {
		amount = subtotal * coupon.Percent / 100
	}

	log.Info().Str("code", code).Float64("amount", amount).Msg("service: coupon validated")
	return amount, coupon, nil
}
