package handlers

import (
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AttributeHandler struct {
	svc services.AttributeService
}

func NewAttributeHandler(svc services.AttributeService) *AttributeHandler {
	return &AttributeHandler{svc: svc}
}

func (h *AttributeHandler) SetupRoutes(api fiber.Router) {
	attributes := api.Group("/attributes")

	attributes.Get("/", h.List)
	attributes.Get("/:id", h.Get)
	attributes.Post("/", h.Create)
	attributes.Put("/:id", h.Update)
	attributes.Delete("/:id", h.Delete)
}

// @Summary List attributes
// @Tags Attributes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/attributes [get]
func (h *AttributeHandler) List(ctx *fiber.Ctx) error {
	page := pageQuery(ctx)
	attributes, total, err := h.svc.List(page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, attributes, total, page)
}

func (h *AttributeHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	attribute, err := h.svc.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, attribute)
}

// @Summary Create an attribute
// @Tags Attributes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AttributeCreateRequest true "type is TEXT, NUMBER, BOOLEAN or SELECT"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Router /api/attributes [post]
func (h *AttributeHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.AttributeCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	attribute, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, attribute)
}

func (h *AttributeHandler) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.AttributeUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	attribute, err := h.svc.Update(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, attribute)
}

func (h *AttributeHandler) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	if err := h.svc.Delete(ctx.UserContext(), currentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}
