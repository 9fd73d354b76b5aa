package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/model"
	"storefront/utils"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Coupon{})
	if filter.Search != "" {
		query = query.Where("code ILIKE ? OR description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var coupons []model.Coupon
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, translate(err)
	}
	return &coupon, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&coupon).Error; err != nil {
		return nil, translate(err)
	}
	return &coupon, nil
}

func (r *CouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	return translate(r.db.WithContext(ctx).Create(coupon).Error)
}

// Save updates an existing coupon in place. It never inserts and never touches used_count,
// so a coupon deleted concurrently stays deleted.
func (r *CouponRepository) Save(ctx context.Context, coupon *model.Coupon) error {
	res := r.db.WithContext(ctx).Model(coupon).
		Select("code", "discount_type", "discount_value", "min_order_value", "max_discount",
			"usage_limit", "expiry_date", "is_active", "description", "updated_at").
		Updates(coupon)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Coupon{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, id uint, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Where("expiry_date >= ?", now).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicate
	}
	return err
}
