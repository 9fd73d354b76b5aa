package handler

import (
	"storefront/model"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreatePaymentOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreatePaymentOrderInput)

	order, err := h.Payments.CreateOrder(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.VerifyPaymentInput)

	result, err := h.Payments.VerifyPayment(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.Payments.FetchPayment(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}
