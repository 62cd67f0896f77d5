package handlers

import (
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	svc services.ClientService
}

func NewClientHandler(svc services.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) SetupRoutes(api fiber.Router) {
	clients := api.Group("/clients")

	clients.Get("/", h.List)
	clients.Get("/:id", h.Get)
	clients.Post("/", h.Create)
	clients.Put("/:id", h.Update)
	clients.Delete("/:id", h.Delete)
}

// @Summary List clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "name contains"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/clients [get]
func (h *ClientHandler) List(ctx *fiber.Ctx) error {
	page := pageQuery(ctx)
	clients, total, err := h.svc.List(ctx.Query("search"), page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, clients, total, page)
}

func (h *ClientHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	client, err := h.svc.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, client)
}

// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClientCreateRequest true "client"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Router /api/clients [post]
func (h *ClientHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.ClientCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	client, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, client)
}

func (h *ClientHandler) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.ClientUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	client, err := h.svc.Update(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, client)
}

func (h *ClientHandler) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	if err := h.svc.Delete(ctx.UserContext(), currentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}
