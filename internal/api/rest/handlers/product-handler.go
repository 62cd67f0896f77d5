package handlers

import (
	"fmt"
	"time"

	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var allowedSheets = map[string]bool{".xlsx": true}

type ProductHandler struct {
	svc    services.ProductService
	sheets services.SpreadsheetService
}

func NewProductHandler(svc services.ProductService, sheets services.SpreadsheetService) *ProductHandler {
	return &ProductHandler{svc: svc, sheets: sheets}
}

func (h *ProductHandler) SetupRoutes(api fiber.Router) {
	products := api.Group("/products")

	products.Get("/", h.List)
	products.Get("/export", h.Export)
	products.Post("/import", h.Import)
	products.Get("/:id", h.Get)
	products.Post("/", h.Create)
	products.Put("/:id", h.Update)
	products.Patch("/:id/category", h.UpdateCategory)
	products.Post("/:id/image", h.UploadImage)
	products.Delete("/:id", h.Delete)
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Param status query string false "DRAFT, ACTIVE or INACTIVE"
// @Param clientId query int false "client"
// @Param categoryId query int false "category"
// @Param search query string false "name contains"
// @Success 200 {object} dto.PaginatedResponse
// @Router /api/products [get]
func (h *ProductHandler) List(ctx *fiber.Ctx) error {
	clientID, err := queryID(ctx, "clientId")
	if err != nil {
		return invalidQuery(ctx)
	}
	categoryID, err := queryID(ctx, "categoryId")
	if err != nil {
		return invalidQuery(ctx)
	}

	page := pageQuery(ctx)
	products, total, err := h.svc.List(dto.ProductFilter{
		Status:     ctx.Query("status"),
		ClientID:   clientID,
		CategoryID: categoryID,
		Search:     ctx.Query("search"),
	}, page)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponsePaginated(ctx, products, total, page)
}

// Get godoc
// @Summary Product detail with client, category and variants
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 404 {object} dto.APIError
// @Router /api/products/{id} [get]
func (h *ProductHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	product, err := h.svc.Get(id)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

// Create godoc
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProductCreateRequest true "product"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Router /api/products [post]
func (h *ProductHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.ProductCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	product, err := h.svc.Create(ctx.UserContext(), currentUserID(ctx), requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, product)
}

// Update godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Param body body dto.ProductUpdateRequest true "fields to change"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/products/{id} [put]
func (h *ProductHandler) Update(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.ProductUpdateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	product, err := h.svc.Update(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

// UpdateCategory godoc
// @Summary Move a product to another category
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Param body body dto.ProductCategoryRequest true "null clears the category"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/products/{id}/category [patch]
func (h *ProductHandler) UpdateCategory(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	var requestBody dto.ProductCategoryRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return invalidBody(ctx)
	}

	product, err := h.svc.UpdateCategory(ctx.UserContext(), currentUserID(ctx), id, requestBody)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

// UploadImage godoc
// @Summary Set the product image
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Param file formData file true "jpg, jpeg, png or webp, max 5MB"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/products/{id}/image [post]
func (h *ProductHandler) UploadImage(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	filename, data, err := readUpload(ctx, allowedImages, maxImageSize, msgImagesOnly)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.svc.SetImage(ctx.UserContext(), currentUserID(ctx), id, filename, data)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Description Refused while variants reference the product.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "product id"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /api/products/{id} [delete]
func (h *ProductHandler) Delete(ctx *fiber.Ctx) error {
	id, err := paramID(ctx)
	if err != nil {
		return invalidID(ctx)
	}
	if err := h.svc.Delete(ctx.UserContext(), currentUserID(ctx), id); err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"id": id, "deleted": true})
}

// Export godoc
// @Summary Export products as xlsx
// @Tags Products
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /api/products/export [get]
func (h *ProductHandler) Export(ctx *fiber.Ctx) error {
	data, err := h.sheets.ExportProducts(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="products-%s.xlsx"`, time.Now().Format("20060102")))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// Import godoc
// @Summary Import products from xlsx
// @Description Header row names the columns: name, description, clientId, categoryId, status.
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Router /api/products/import [post]
func (h *ProductHandler) Import(ctx *fiber.Ctx) error {
	filename, data, err := readUpload(ctx, allowedSheets, maxImportSize, msgSheetsOnly)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.sheets.ImportProducts(ctx.UserContext(), currentUserID(ctx), filename, data)
	if err != nil {
		return respondError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}
