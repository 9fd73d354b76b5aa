package validate

import (
	"storefront/constants"
	"storefront/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePaymentOrder() fiber.Handler {
	return body[model.CreatePaymentOrderInput](constants.PAYMENT_MISSING_AMOUNT)
}

func VerifyPayment() fiber.Handler {
	return body[model.VerifyPaymentInput](constants.PAYMENT_MISSING_FIELDS)
}
