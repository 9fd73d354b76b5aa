package handler

import (
	"errors"
	"log/slog"
	"time"

	"storefront/constants"
	"storefront/service"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Coupons  *service.CouponService
	Payments *service.PaymentService
	Catalog  *service.CatalogService
	Media    *service.MediaService
	Auth     *service.AuthService
	Log      *slog.Logger
	TokenTTL time.Duration
}

var statusByKind = map[service.Kind]int{
	service.KindValidation:     fiber.StatusBadRequest,
	service.KindNotFound:       fiber.StatusNotFound,
	service.KindConflict:       fiber.StatusConflict,
	service.KindBusinessRule:   fiber.StatusBadRequest,
	service.KindUpstream:       fiber.StatusBadGateway,
	service.KindAuthentication: fiber.StatusBadRequest,
	service.KindUnauthorized:   fiber.StatusUnauthorized,
	service.KindInternal:       fiber.StatusInternalServerError,
}

// StatusOf returns the HTTP status for a service error. Anything else is a 500.
func StatusOf(err error) int {
	if status, ok := statusByKind[service.KindOf(err)]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	var se *service.Error
	if errors.As(err, &se) {
		return utils.ErrorResponse(c, StatusOf(err), se.Message, se.Err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

// ErrorHandler is the fiber fallback for errors that escape a handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.MessageResponse(c, fe.Code, fe.Message)
	}
	return fail(c, err)
}

func inputId(c *fiber.Ctx) uint {
	id, _ := c.Locals("inputId").(uint)
	return id
}
