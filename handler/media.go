package handler

import (
	"storefront/constants"
	"storefront/model"
	"storefront/utils"
	"storefront/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetGallery(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.GalleryFilter)

	result, err := h.Media.ListGallery(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) CreateGalleryImage(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateGalleryInput)

	file, err := validate.File(c).Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_REQUIRED, err)
	}
	defer file.Close()

	image, err := h.Media.CreateGalleryImage(c.UserContext(), input, file)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, image)
}

func (h *Handler) UpdateGalleryImage(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateGalleryInput)

	image, err := h.Media.UpdateGalleryImage(c.UserContext(), inputId(c), input)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, image)
}

func (h *Handler) DeleteGalleryImage(c *fiber.Ctx) error {
	if err := h.Media.DeleteGalleryImage(c.UserContext(), inputId(c)); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.GALLERY_DELETED)
}

func (h *Handler) GetVideos(c *fiber.Ctx) error {
	filter := c.Locals("filter").(model.VideoFilter)

	result, err := h.Media.ListVideos(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetVideoBySlug(c *fiber.Ctx) error {
	video, err := h.Media.GetVideo(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, video)
}

func (h *Handler) CreateVideo(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateVideoInput)

	file, err := validate.File(c).Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_REQUIRED, err)
	}
	defer file.Close()

	video, err := h.Media.CreateVideo(c.UserContext(), input, file)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, video)
}

func (h *Handler) DeleteVideo(c *fiber.Ctx) error {
	if err := h.Media.DeleteVideo(c.UserContext(), inputId(c)); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.VIDEO_DELETED)
}

func (h *Handler) UploadImage(c *fiber.Ctx) error {
	file, err := validate.File(c).Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_REQUIRED, err)
	}
	defer file.Close()

	asset, err := h.Media.UploadImage(c.UserContext(), file)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"url":      asset.Url,
		"publicId": asset.PublicId,
	})
}

func (h *Handler) DeleteAsset(c *fiber.Ctx) error {
	input := c.Locals("input").(model.DeleteAssetInput)

	if err := h.Media.DeleteAsset(c.UserContext(), input); err != nil {
		return fail(c, err)
	}
	return utils.MessageResponse(c, fiber.StatusOK, constants.UPLOAD_DELETED)
}
