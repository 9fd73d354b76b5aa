package model

import "time"

type Coupon struct {
	DTO
	Code          string    `gorm:"size:64;uniqueIndex;not null" json:"code"`
	DiscountType  string    `gorm:"size:20;not null" json:"discountType"` // percentage, fixed
	DiscountValue float64   `gorm:"type:decimal(12,2);not null" json:"discountValue"`
	MinOrderValue float64   `gorm:"type:decimal(12,2);not null" json:"minOrderValue"`
	MaxDiscount   *float64  `gorm:"type:decimal(12,2)" json:"maxDiscount"`
	UsageLimit    *int      `json:"usageLimit"`
	UsedCount     int       `gorm:"not null" json:"usedCount"`
	ExpiryDate    time.Time `gorm:"not null;index" json:"expiryDate"`
	IsActive      bool      `gorm:"not null" json:"isActive"`
	Description   string    `gorm:"type:text" json:"description"`
}

type Coupons []Coupon

type CreateCouponInput struct {
	Code          string     `json:"code" validate:"required,min=3,max=64"`
	DiscountType  string     `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue *float64   `json:"discountValue" validate:"required,gte=0"`
	MinOrderValue *float64   `json:"minOrderValue" validate:"omitempty,gte=0"`
	MaxDiscount   *float64   `json:"maxDiscount" validate:"omitempty,gte=0"`
	UsageLimit    *int       `json:"usageLimit" validate:"omitempty,gt=0"`
	ExpiryDate    *time.Time `json:"expiryDate" validate:"required"`
	IsActive      *bool      `json:"isActive" validate:"omitempty"`
	Description   string     `json:"description" validate:"max=500"`
}

type UpdateCouponInput struct {
	Code          *string    `json:"code" validate:"omitempty,min=3,max=64"`
	DiscountType  *string    `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue *float64   `json:"discountValue" validate:"omitempty,gte=0"`
	MinOrderValue *float64   `json:"minOrderValue" validate:"omitempty,gte=0"`
	MaxDiscount   *float64   `json:"maxDiscount" validate:"omitempty,gte=0"`
	UsageLimit    *int       `json:"usageLimit" validate:"omitempty,gt=0"`
	ExpiryDate    *time.Time `json:"expiryDate" validate:"omitempty"`
	IsActive      *bool      `json:"isActive" validate:"omitempty"`
	Description   *string    `json:"description" validate:"omitempty,max=500"`

	// Clear flags remove the cap or the usage limit; they win over a value sent alongside.
	ClearMaxDiscount bool `json:"clearMaxDiscount"`
	ClearUsageLimit  bool `json:"clearUsageLimit"`
}

type ValidateCouponInput struct {
	Code       string   `json:"code" validate:"required"`
	OrderTotal *float64 `json:"orderTotal" validate:"required,gte=0"`
}

type UseCouponInput struct {
	Code string `json:"code" validate:"required"`
}

type CouponFilter struct {
	Pagination
	Search   string `query:"search"`
	IsActive *bool  `query:"isActive"`
}

type AppliedCoupon struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	Discount      float64 `json:"discount"`
}

type CouponValidation struct {
	Discount   float64       `json:"discount"`
	FinalTotal float64       `json:"finalTotal"`
	Coupon     AppliedCoupon `json:"coupon"`
}
