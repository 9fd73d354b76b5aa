package validate

import (
	"storefront/constants"
	"storefront/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return body[model.LoginInput](constants.MISSING_LOGIN_INPUT)
}
