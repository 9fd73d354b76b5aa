package validate

import (
	"storefront/constants"
	"storefront/model"

	"github.com/gofiber/fiber/v2"
)

func ValidateCoupon() fiber.Handler {
	return body[model.ValidateCouponInput](constants.COUPON_MISSING_FIELDS)
}

func UseCoupon() fiber.Handler {
	return body[model.UseCouponInput](constants.COUPON_MISSING_CODE)
}

func CreateCoupon() fiber.Handler {
	return body[model.CreateCouponInput]("")
}

func UpdateCoupon() fiber.Handler {
	return body[model.UpdateCouponInput]("")
}

func CouponFilter() fiber.Handler {
	return query[model.CouponFilter]()
}
