package handlers

import (
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuditHandler exposes the audit trail read only.
type AuditHandler struct {
	svc services.AuditService
}

func NewAuditHandler(svc services.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) SetupRoutes(api fiber.Router) {
	api.Get("/audit-logs", h.ListLogs)
	api.Get("/change-history", h.ListHistory)
	api.Get("/change-history/:id", h.GetHistory)
}

// ListLogs godoc
// @Summary List audit logs, newest first
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param entity query string false "Product, Variant, Category, Attribute, Client or User"
// @Param entityId query int false "entity id"
// @Param action query string false "CREATE, UPDATE, DELETE or UPDATE_CATEGORY"
// @Param userId query int false "acting user"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/audit-logs [get]
func (h *AuditHandler) ListLogs(ctx *fiber.Ctx) error {
	entityID, err := queryID(ctx, "entityId")
	if err != nil {
		return invalidQuery(ctx)
	}
	userID, err := queryID(ctx, "userId")
	if err != nil {
		return invalidQuery(ctx)
	}

	page := pageQuery(ctx)
	logs, total, err := h.svc.ListLogs(dto.AuditLogFilter{
		Entity:   ctx.Query("entity"),
		EntityID: entityID,
		Action:   ctx.Query("action"),
		UserID:   userID,
	}, page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, logs, total, page)
}

// ListHistory godoc
// @Summary List change history with before/after snapshots
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param entity query string false "Product, Variant or Category"
// @Param entityId query int false "entity id"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/change-history [get]
func (h *AuditHandler) ListHistory(ctx *fiber.Ctx) error {
	entityID, err := queryID(ctx, "entityId")
	if err != nil {
		return invalidQuery(ctx)
	}

	page := pageQuery(ctx)
	entries, total, err := h.svc.ListHistory(dto.HistoryFilter{
		Entity:   ctx.Query("entity"),
		EntityID: entityID,
	}, page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, entries, total, page)
}

func (h *AuditHandler) GetHistory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	entry, err := h.svc.GetHistory(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, entry)
}
