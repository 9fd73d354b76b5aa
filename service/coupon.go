package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"storefront/constants"
	"storefront/metrics"
	"storefront/model"
	"storefront/utils"
)

type CouponStore interface {
	List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, int64, error)
	FindByID(ctx context.Context, id uint) (*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	Create(ctx context.Context, coupon *model.Coupon) error
	Save(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id uint) error
	// IncrementUsage bumps used_count only while the coupon is still redeemable at now,
	// in one conditional update. It reports whether a row was changed.
	IncrementUsage(ctx context.Context, id uint, now time.Time) (bool, error)
}

type CouponService struct {
	store CouponStore
	log   *slog.Logger
	now   func() time.Time
}

func NewCouponService(store CouponStore, log *slog.Logger) *CouponService {
	return &CouponService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (s *CouponService) Validate(ctx context.Context, code string, orderTotal *float64) (*model.CouponValidation, error) {
	code = utils.NormalizeCode(code)
	if code == "" || orderTotal == nil {
		return nil, newError(KindValidation, constants.COUPON_MISSING_FIELDS, nil)
	}
	if *orderTotal < 0 {
		return nil, newError(KindValidation, "Order total must not be negative", nil)
	}

	coupon, err := s.lookup(ctx, code, constants.COUPON_INVALID_CODE)
	if err != nil {
		metrics.CouponValidations.WithLabelValues("not_found").Inc()
		return nil, err
	}

	validity := CheckValidity(*coupon, s.now())
	if !validity.Valid {
		metrics.CouponValidations.WithLabelValues(validity.State.String()).Inc()
		return nil, newError(KindBusinessRule, validity.State.Message(), nil)
	}

	discount := ComputeDiscount(*coupon, *orderTotal)
	if !discount.Valid {
		metrics.CouponValidations.WithLabelValues("below_minimum").Inc()
		return nil, newError(KindBusinessRule, discount.Message, nil)
	}

	metrics.CouponValidations.WithLabelValues("applied").Inc()
	return &model.CouponValidation{
		Discount:   discount.Amount,
		FinalTotal: utils.RoundMoney(*orderTotal - discount.Amount),
		Coupon: model.AppliedCoupon{
			Code:          coupon.Code,
			DiscountType:  coupon.DiscountType,
			DiscountValue: coupon.DiscountValue,
			Discount:      discount.Amount,
		},
	}, nil
}

// Redeem records one use of the coupon. The limit check and the increment are a single
// conditional update, so concurrent redemptions cannot push used_count past usage_limit.
func (s *CouponService) Redeem(ctx context.Context, code string) error {
	code = utils.NormalizeCode(code)
	if code == "" {
		return newError(KindValidation, constants.COUPON_MISSING_CODE, nil)
	}

	coupon, err := s.lookup(ctx, code, constants.COUPON_INVALID_CODE)
	if err != nil {
		return err
	}

	now := s.now()
	ok, err := s.store.IncrementUsage(ctx, coupon.ID, now)
	if err != nil {
		metrics.CouponRedemptions.WithLabelValues("error").Inc()
		return newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	if ok {
		metrics.CouponRedemptions.WithLabelValues("redeemed").Inc()
		s.log.Info("coupon redeemed", slog.String("code", code))
		return nil
	}

	// Nothing changed: re-read to report why.
	current, err := s.lookup(ctx, code, constants.COUPON_INVALID_CODE)
	if err != nil {
		return err
	}
	state := StateOf(*current, now)
	if state == StateUsable {
		// The row was changed between our read and update; treat as exhausted.
		state = StateExhausted
	}
	metrics.CouponRedemptions.WithLabelValues(state.String()).Inc()
	return newError(KindBusinessRule, state.Message(), nil)
}

func (s *CouponService) List(ctx context.Context, filter model.CouponFilter) (*model.ResponseCustom, error) {
	coupons, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{
		Rows:       coupons,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}, nil
}

func (s *CouponService) Get(ctx context.Context, id uint) (*model.Coupon, error) {
	coupon, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, newError(KindNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return coupon, nil
}

func (s *CouponService) Create(ctx context.Context, input model.CreateCouponInput) (*model.Coupon, error) {
	if input.DiscountValue == nil {
		return nil, newError(KindValidation, "Discount value is required", nil)
	}
	if input.ExpiryDate == nil {
		return nil, newError(KindValidation, constants.COUPON_MISSING_EXPIRY, nil)
	}

	coupon := model.Coupon{
		Code:          utils.NormalizeCode(input.Code),
		DiscountType:  input.DiscountType,
		DiscountValue: *input.DiscountValue,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		ExpiryDate:    *input.ExpiryDate,
		IsActive:      true,
		Description:   input.Description,
	}
	if input.MinOrderValue != nil {
		coupon.MinOrderValue = *input.MinOrderValue
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if err := checkCouponRules(coupon); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByCode(ctx, coupon.Code); err == nil {
		return nil, newError(KindConflict, constants.COUPON_CODE_EXISTS, nil)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := s.store.Create(ctx, &coupon); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return nil, newError(KindConflict, constants.COUPON_CODE_EXISTS, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	s.log.Info("coupon created", slog.String("code", coupon.Code), slog.Uint64("id", uint64(coupon.ID)))
	return &coupon, nil
}

func (s *CouponService) Update(ctx context.Context, id uint, input model.UpdateCouponInput) (*model.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		code := utils.NormalizeCode(*input.Code)
		if code != coupon.Code {
			existing, err := s.store.FindByCode(ctx, code)
			switch {
			case err == nil && existing.ID != coupon.ID:
				return nil, newError(KindConflict, constants.COUPON_CODE_EXISTS, nil)
			case err != nil && !errors.Is(err, model.ErrNotFound):
				return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
			}
			coupon.Code = code
		}
	}
	if input.DiscountType != nil {
		coupon.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		coupon.DiscountValue = *input.DiscountValue
	}
	if input.MinOrderValue != nil {
		coupon.MinOrderValue = *input.MinOrderValue
	}
	if input.ClearMaxDiscount {
		coupon.MaxDiscount = nil
	} else if input.MaxDiscount != nil {
		coupon.MaxDiscount = input.MaxDiscount
	}
	if input.ClearUsageLimit {
		coupon.UsageLimit = nil
	} else if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.ExpiryDate != nil {
		coupon.ExpiryDate = *input.ExpiryDate
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.Description != nil {
		coupon.Description = *input.Description
	}
	if err := checkCouponRules(*coupon); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, coupon); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicate):
			return nil, newError(KindConflict, constants.COUPON_CODE_EXISTS, err)
		case errors.Is(err, model.ErrNotFound):
			return nil, newError(KindNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return newError(KindNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	s.log.Info("coupon deleted", slog.Uint64("id", uint64(id)))
	return nil
}

func (s *CouponService) ToggleActive(ctx context.Context, id uint) (*model.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	coupon.IsActive = !coupon.IsActive
	if err := s.store.Save(ctx, coupon); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, newError(KindNotFound, constants.COUPON_NOT_FOUND, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return coupon, nil
}

func (s *CouponService) lookup(ctx context.Context, code, notFoundMessage string) (*model.Coupon, error) {
	coupon, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, newError(KindNotFound, notFoundMessage, err)
		}
		return nil, newError(KindInternal, constants.ERROR_INTERNAL_ERROR, err)
	}
	return coupon, nil
}

func checkCouponRules(c model.Coupon) error {
	switch {
	case c.Code == "":
		return newError(KindValidation, constants.COUPON_MISSING_CODE, nil)
	case c.DiscountType != constants.DISCOUNT_PERCENTAGE && c.DiscountType != constants.DISCOUNT_FIXED:
		return newError(KindValidation, constants.COUPON_BAD_TYPE, nil)
	case c.DiscountValue < 0:
		return newError(KindValidation, constants.COUPON_NEGATIVE_VALUE, nil)
	case c.DiscountType == constants.DISCOUNT_PERCENTAGE && c.DiscountValue > 100:
		return newError(KindValidation, constants.COUPON_BAD_PERCENTAGE, nil)
	case c.MinOrderValue < 0:
		return newError(KindValidation, constants.COUPON_NEGATIVE_MIN, nil)
	case c.MaxDiscount != nil && *c.MaxDiscount < 0:
		return newError(KindValidation, constants.COUPON_NEGATIVE_MAX, nil)
	case c.UsageLimit != nil && *c.UsageLimit <= 0:
		return newError(KindValidation, constants.COUPON_BAD_USAGE_LIMIT, nil)
	case c.ExpiryDate.IsZero():
		return newError(KindValidation, constants.COUPON_MISSING_EXPIRY, nil)
	}
	return nil
}
