package middleware

import (
	"errors"
	"strings"

	"storefront/constants"
	"storefront/helper"
	"storefront/model"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected accepts an access token from the access_token cookie or a Bearer header
// and stores its claims under "account".
func Protected(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(key, token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}
		claim, err := helper.ClaimFromToken(jwtToken)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, err)
		}

		c.Locals("account", claim)
		return c.Next()
	}
}

// RequireRole must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := c.Locals("account").(model.TokenClaim)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.MISSING_TOKEN, nil)
		}
		if !utils.IsValidValueOfConstant(claim.Role, roles) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, nil)
		}
		return c.Next()
	}
}
