package middleware

import (
	"errors"

	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	msgMissingToken = "Token no proporcionat"
	msgInvalidToken = "Token invàlid o caducat"
)

// AuthMiddleware rejects a missing token with 401 and an invalid or expired
// one with 403.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := auth.VerifyToken(ctx.Get(fiber.HeaderAuthorization))
		if errors.Is(err, helper.ErrMissingToken) {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, msgMissingToken)
		}
		if err != nil {
			return utils.ResponseError(ctx, fiber.StatusForbidden, msgInvalidToken)
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func AdminOnly(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, ok := ctx.Locals("userID").(uint)
		if !ok || userID == 0 {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, msgMissingToken)
		}

		isAdmin, err := userSvc.IsAdmin(userID)
		if err != nil {
			status, msg := services.StatusOf(err)
			return utils.ResponseError(ctx, status, msg)
		}

		if !isAdmin {
			return utils.ResponseError(ctx, fiber.StatusForbidden, services.MsgAdminOnly)
		}

		return ctx.Next()
	}
}
