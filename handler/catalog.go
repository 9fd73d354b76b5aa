package handler

import (
	"storefront/constants"
	"storefront/model"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProducts(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.ProductFilter)

	result, err := h.Catalog.ListProducts(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetProductBySlug(c *fiber.Ctx) error {
	product, err := h.Catalog.GetProduct(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func (h *Handler) CreateReview(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateReviewInput)

	review, err := h.Catalog.CreateReview(c.UserContext(), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, review)
}

// GetReviews lists approved reviews only.
func (h *Handler) GetReviews(c *fiber.Ctx) error {
	return h.listReviews(c, true)
}

func (h *Handler) GetAllReviews(c *fiber.Ctx) error {
	return h.listReviews(c, false)
}

func (h *Handler) listReviews(c *fiber.Ctx, approvedOnly bool) error {
	filter := c.Locals("filter").(model.ReviewFilter)

	result, err := h.Catalog.ListReviews(c.UserContext(), filter, approvedOnly)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) ApproveReview(c *fiber.Ctx) error {
	review, err := h.Catalog.ApproveReview(c.UserContext(), inputId(c))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

func (h *Handler) DeleteReview(c *fiber.Ctx) error {
	if err := h.Catalog.DeleteReview(c.UserContext(), inputId(c)); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.REVIEW_DELETED)
}
