package handlers

import (
	"github.com/SundayYogurt/pim_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetupAuthRoutes registers the routes reachable without a token.
func (h *UserHandler) SetupAuthRoutes(api fiber.Router) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
}

func (h *UserHandler) SetupRoutes(api fiber.Router) {
	api.Get("/auth/me", h.Me)

	users := api.Group("/users", middleware.AdminOnly(h.svc))
	users.Get("/", h.List)
	users.Post("/", h.Create)
}

// Register godoc
// @Summary Register a user
// @Description The first registered user becomes ADMIN, later ones EDITOR.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "user"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Router /api/auth/register [post]
func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	user, err := h.svc.Register(ctx.UserContext(), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}

// Login godoc
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.UserLogin true "credentials"
// @Success 200 {object} dto.APISuccessLogin
// @Failure 401 {object} dto.APIError
// @Router /api/auth/login [post]
func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	res, err := h.svc.Login(requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APISuccessAny
// @Failure 401 {object} dto.APIError
// @Router /api/auth/me [get]
func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.svc.Me(currentUserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} dto.PaginatedResponse
// @Failure 403 {object} dto.APIError
// @Router /api/users [get]
func (h *UserHandler) List(ctx *fiber.Ctx) error {
	page := pageQuery(ctx)
	users, total, err := h.svc.List(page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, users, total, page)
}

// Create godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UserCreateRequest true "user"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 403 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Router /api/users [post]
func (h *UserHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.UserCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	user, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, user)
}
