package utils

import (
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

func ResponsePaginated(ctx *fiber.Ctx, data interface{}, total int64, page dto.PageQuery) error {
	return ctx.Status(fiber.StatusOK).JSON(dto.PaginatedResponse{
		Data: data,
		Pagination: dto.Pagination{
			Total:      total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: utils.TotalPages(total, page.Limit),
		},
	})
}
