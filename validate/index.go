package validate

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"storefront/constants"
	"storefront/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params(key), 10, 32)
		if err != nil || id == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals("inputId", uint(id))
		return c.Next()
	}
}

// body parses the request body into T, validates it and stores it under "input".
// missingMessage replaces the generic message when a required field is absent.
func body[T any](missingMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if message, err := parseBody(c, &input, missingMessage); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, message, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

// upload is body for multipart forms that also carry a file in field.
func upload[T any](field string, maxSize int64, mimePrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, status, message, err := checkFile(c, field, maxSize, mimePrefix)
		if status != 0 {
			return utils.ErrorResponse(c, status, message, err)
		}
		var input T
		if message, err := parseBody(c, &input, ""); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, message, err)
		}

		c.Locals("file", fh)
		c.Locals("input", input)
		return c.Next()
	}
}

func parseBody(c *fiber.Ctx, input any, missingMessage string) (string, error) {
	if err := c.BodyParser(input); err != nil {
		return constants.ERROR_INPUT, err
	}
	if err := validate.Struct(input); err != nil {
		return validationMessage(err, missingMessage), err
	}
	return "", nil
}

func query[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter T
		if err := c.QueryParser(&filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("filter", filter)
		return c.Next()
	}
}

// file stores the header of a checked multipart file under "file".
func file(field string, maxSize int64, mimePrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, status, message, err := checkFile(c, field, maxSize, mimePrefix)
		if status != 0 {
			return utils.ErrorResponse(c, status, message, err)
		}

		c.Locals("file", fh)
		return c.Next()
	}
}

// checkFile enforces the size limit and MIME type prefix of a multipart file. A non-zero
// status means the file was rejected.
func checkFile(c *fiber.Ctx, field string, maxSize int64, mimePrefix string) (*multipart.FileHeader, int, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fiber.StatusBadRequest, constants.FILE_REQUIRED + ": " + field, err
	}
	if fh.Size > maxSize {
		return nil, fiber.StatusRequestEntityTooLarge, constants.FILE_TOO_LARGE, nil
	}
	if !strings.HasPrefix(fh.Header.Get(fiber.HeaderContentType), mimePrefix) {
		return nil, fiber.StatusBadRequest, constants.FILE_BAD_TYPE, nil
	}
	return fh, 0, "", nil
}

func validationMessage(err error, missingMessage string) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return constants.ERROR_INPUT
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" && missingMessage != "" {
			return missingMessage
		}
		fields = append(fields, fe.Field())
	}
	return constants.ERROR_INPUT + ": " + strings.Join(fields, ", ")
}

// File returns the multipart header stored by a file validator.
func File(c *fiber.Ctx) *multipart.FileHeader {
	fh, _ := c.Locals("file").(*multipart.FileHeader)
	return fh
}
