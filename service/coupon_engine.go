package service

import (
	"fmt"
	"time"

	"storefront/constants"
	"storefront/model"
	"storefront/utils"

	"github.com/shopspring/decimal"
)

// CouponState is derived from a coupon on every read and never stored.
type CouponState int

const (
	StateUsable CouponState = iota
	StateDisabled
	StateExpired
	StateExhausted
)

func (s CouponState) String() string {
	switch s {
	case StateUsable:
		return "usable"
	case StateDisabled:
		return "disabled"
	case StateExpired:
		return "expired"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Reason is the short machine reason reported for an unusable coupon.
func (s CouponState) Reason() string {
	switch s {
	case StateDisabled:
		return "inactive"
	case StateExpired:
		return "expired"
	case StateExhausted:
		return "usage limit reached"
	}
	return ""
}

// Message is the user facing text for the state.
func (s CouponState) Message() string {
	switch s {
	case StateDisabled:
		return constants.COUPON_INACTIVE
	case StateExpired:
		return constants.COUPON_EXPIRED
	case StateExhausted:
		return constants.COUPON_EXHAUSTED
	}
	return ""
}

type Validity struct {
	Valid  bool
	State  CouponState
	Reason string
}

type Discount struct {
	Valid   bool
	Amount  float64
	Message string
}

// StateOf resolves the coupon state at now. Disabled wins over expired, which wins over exhausted.
func StateOf(c model.Coupon, now time.Time) CouponState {
	switch {
	case !c.IsActive:
		return StateDisabled
	case now.After(c.ExpiryDate):
		return StateExpired
	case c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit:
		return StateExhausted
	}
	return StateUsable
}

func CheckValidity(c model.Coupon, now time.Time) Validity {
	state := StateOf(c, now)
	return Validity{
		Valid:  state == StateUsable,
		State:  state,
		Reason: state.Reason(),
	}
}

// ComputeDiscount applies the coupon to orderTotal. Fixed discounts are clamped to the
// order total so the final amount never goes negative.
func ComputeDiscount(c model.Coupon, orderTotal float64) Discount {
	total := decimal.NewFromFloat(orderTotal)
	minimum := decimal.NewFromFloat(c.MinOrderValue)
	if total.LessThan(minimum) {
		return Discount{
			Valid:   false,
			Amount:  0,
			Message: fmt.Sprintf("Minimum order value of %s required", utils.FormatMoney(c.MinOrderValue)),
		}
	}

	value := decimal.NewFromFloat(c.DiscountValue)
	var amount decimal.Decimal
	switch c.DiscountType {
	case constants.DISCOUNT_PERCENTAGE:
		amount = total.Mul(value).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil {
			amount = decimal.Min(amount, decimal.NewFromFloat(*c.MaxDiscount))
		}
	default:
		amount = decimal.Min(value, total)
	}

	return Discount{
		Valid:   true,
		Amount:  amount.Round(2).InexactFloat64(),
		Message: constants.COUPON_APPLIED,
	}
}
