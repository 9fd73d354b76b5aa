package utils

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorResponse writes {"message": message}. The cause is logged, never sent to the client.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	if err != nil {
		level := slog.LevelDebug
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.UserContext(), level, "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Any("error", err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(data)
}

func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}

	return query
}

func Ptr[T any](v T) *T {
	return &v
}
