package handlers

import (
	"strings"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	svc services.CategoryService
}

func NewCategoryHandler(svc services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) SetupRoutes(api fiber.Router) {
	categories := api.Group("/categories")

	categories.Get("/", h.List)
	categories.Get("/:id", h.Get)
	categories.Post("/", h.Create)
	categories.Put("/:id", h.Update)
	categories.Delete("/:id", h.Delete)
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Param parentId query string false "parent id, or root for top level"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/categories [get]
func (h *CategoryHandler) List(ctx *fiber.Ctx) error {
	var filter dto.CategoryFilter
	if strings.EqualFold(strings.TrimSpace(ctx.Query("parentId")), "root") {
		filter.RootOnly = true
	} else {
		parentID, err := queryID(ctx, "parentId")
		if err != nil {
			return invalidQuery(ctx)
		}
		filter.ParentID = parentID
	}

	page := pageQuery(ctx)
	categories, total, err := h.svc.List(filter, page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, categories, total, page)
}

// Get godoc
// @Summary Category detail with parent and children
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 404 {object} dto.APIError
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	category, err := h.svc.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CategoryCreateRequest true "category"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Router /api/categories [post]
func (h *CategoryHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CategoryCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	category, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Param body body dto.CategoryUpdateRequest true "parentId 0 moves it to the top level"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.CategoryUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	category, err := h.svc.Update(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, category)
}

// Delete godoc
// @Summary Delete a category
// @Description Refused while child categories, products or variants reference it.
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path int true "category id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	if err := h.svc.Delete(ctx.UserContext(), currentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}
