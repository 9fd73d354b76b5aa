package handler

import (
	"fmt"

	"storefront/constants"
	"storefront/model"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

const couponQRSize = 256

func (h *Handler) ValidateCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ValidateCouponInput)

	result, err := h.Coupons.Validate(c.UserContext(), input.Code, input.OrderTotal)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) UseCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UseCouponInput)

	if err := h.Coupons.Redeem(c.UserContext(), input.Code); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.COUPON_USED)
}

func (h *Handler) GetCoupons(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.CouponFilter)

	result, err := h.Coupons.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetCouponById(c *fiber.Ctx) error {
	coupon, err := h.Coupons.Get(c.UserContext(), inputId(c))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

func (h *Handler) CreateCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateCouponInput)

	coupon, err := h.Coupons.Create(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, coupon)
}

func (h *Handler) UpdateCoupon(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateCouponInput)

	coupon, err := h.Coupons.Update(c.UserContext(), inputId(c), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

func (h *Handler) DeleteCoupon(c *fiber.Ctx) error {
	if err := h.Coupons.Delete(c.UserContext(), inputId(c)); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.COUPON_DELETED)
}

func (h *Handler) ToggleCoupon(c *fiber.Ctx) error {
	coupon, err := h.Coupons.ToggleActive(c.UserContext(), inputId(c))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, coupon)
}

// GetCouponQR renders the coupon code as a PNG for printed promotions.
func (h *Handler) GetCouponQR(c *fiber.Ctx) error {
	coupon, err := h.Coupons.Get(c.UserContext(), inputId(c))
	if err != nil {
		return fail(c, err)
	}

	png, err := utils.GenerateQRCode(coupon.Code, couponQRSize)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.png"`, coupon.Code))
	c.Type("png")
	return c.Send(png)
}
