package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	pageutil "github.com/SundayYogurt/pim_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidID    = "ID no vàlid"
	msgInvalidBody  = "Dades no vàlides"
	msgInvalidQuery = "Paràmetres de consulta no vàlids"
)

var errInvalidNumber = errors.New("invalid number")

// currentUserID is set by the auth middleware.
func currentUserID(ctx *fiber.Ctx) uint {
	id, _ := ctx.Locals("userID").(uint)
	return id
}

func paramID(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidNumber
	}
	return uint(id), nil
}

// queryID returns nil when the key is absent.
func queryID(ctx *fiber.Ctx, key string) (*uint, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errInvalidNumber
	}
	v := uint(id)
	return &v, nil
}

func pageQuery(ctx *fiber.Ctx) dto.PageQuery {
	page, limit := pageutil.NormalizePage(
		ctx.QueryInt("page", pageutil.DefaultPage),
		ctx.QueryInt("limit", pageutil.DefaultLimit),
	)
	return dto.PageQuery{Page: page, Limit: limit}
}

func respondError(ctx *fiber.Ctx, err error) error {
	status, msg := services.StatusOf(err)
	return utils.ResponseError(ctx, status, msg)
}

func invalidID(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidID)
}

func invalidBody(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidBody)
}

func invalidQuery(ctx *fiber.Ctx) error {
	return utils.ResponseError(ctx, fiber.StatusBadRequest, msgInvalidQuery)
}
