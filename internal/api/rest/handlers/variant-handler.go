package handlers

import (
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type VariantHandler struct {
	svc services.VariantService
}

func NewVariantHandler(svc services.VariantService) *VariantHandler {
	return &VariantHandler{svc: svc}
}

func (h *VariantHandler) SetupRoutes(api fiber.Router) {
	variants := api.Group("/variants")

	variants.Get("/", h.List)
	variants.Get("/:id", h.Get)
	variants.Post("/", h.Create)
	variants.Put("/:id", h.Update)
	variants.Delete("/:id", h.Delete)
}

// List godoc
// @Summary List variants
// @Tags Variants
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Param productId query int false "product"
// @Param status query string false "status"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/variants [get]
func (h *VariantHandler) List(ctx *fiber.Ctx) error {
	productID, err := queryID(ctx, "productId")
	if err != nil {
		return invalidQuery(ctx)
	}

	page := pageQuery(ctx)
	variants, total, err := h.svc.List(dto.VariantFilter{
		ProductID: productID,
		Status:    ctx.Query("status"),
	}, page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, variants, total, page)
}

// Get godoc
// @Summary Variant detail with attribute values
// @Tags Variants
// @Produce json
// @Security BearerAuth
// @Param id path int true "variant id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 404 {object} dto.APIError
// @Router /api/variants/{id} [get]
func (h *VariantHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	variant, err := h.svc.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, variant)
}

// Create godoc
// @Summary Create a variant
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VariantCreateRequest true "variant"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Router /api/variants [post]
func (h *VariantHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.VariantCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	variant, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, variant)
}

// Update godoc
// @Summary Update a variant
// @Description A present attributeValues list replaces the stored values.
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "variant id"
// @Param body body dto.VariantUpdateRequest true "fields to change"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/variants/{id} [put]
func (h *VariantHandler) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.VariantUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	variant, err := h.svc.Update(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, variant)
}

// Delete godoc
// @Summary Delete a variant and its attribute values
// @Tags Variants
// @Produce json
// @Security BearerAuth
// @Param id path int true "variant id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 404 {object} dto.APIError
// @Router /api/variants/{id} [delete]
func (h *VariantHandler) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	if err := h.svc.Delete(ctx.UserContext(), currentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}
