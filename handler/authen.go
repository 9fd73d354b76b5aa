package handler

import (
	"time"

	"storefront/model"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

const accessTokenCookie = "access_token"

func (h *Handler) Login(c *fiber.Ctx) error {
	input := c.Locals("input").(model.LoginInput)

	token, err := h.Auth.Login(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    token.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Expires:  time.Now().Add(h.TokenTTL),
	})
	return utils.SuccessResponse(c, fiber.StatusOK, token)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Expires:  time.Now().Add(-time.Hour),
	})
	return utils.MessageResponse(c, fiber.StatusOK, "Logged out")
}

// GetMe returns the claims of the authenticated admin.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	claim := c.Locals("account").(model.TokenClaim)
	return utils.SuccessResponse(c, fiber.StatusOK, claim)
}
