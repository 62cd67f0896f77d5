package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/services"
	pageutil "github.com/SundayYogurt/pim_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxImageSize  = 5 * 1024 * 1024 //5MB
	maxImportSize = 10 * 1024 * 1024
	uploadFolder  = "images"
)

const (
	msgImagesOnly = "Només s'accepten imatges jpg, jpeg, png o webp"
	msgSheetsOnly = "Només s'accepten fitxers xlsx"
)

var allowedImages = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type UploadResponse struct {
	URL string `json:"url"`
}

type UploadHandler struct {
	uploader interfaces.Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader interfaces.Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

func (h *UploadHandler) SetupRoutes(api fiber.Router) {
	api.Post("/uploads", h.UploadImage)
}

// readUpload returns the multipart "file" field after checking its extension
// and size. extMsg is the error for a rejected extension.
func readUpload(ctx *fiber.Ctx, allowed map[string]bool, maxSize int64, extMsg string) (string, []byte, error) {
	file, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, errors.New("Cal adjuntar un fitxer")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", nil, errors.New(extMsg)
	}
	if file.Size > maxSize {
		return "", nil, errors.New("El fitxer és massa gran")
	}

	f, err := file.Open()
	if err != nil {
		return "", nil, errors.New("No s'ha pogut llegir el fitxer")
	}
	defer f.Close()

	data, err := pageutil.ReadAllLimit(f, maxSize)
	if err != nil {
		return "", nil, errors.New("El fitxer és massa gran")
	}
	return file.Filename, data, nil
}

// UploadImage godoc
// @Summary Upload an image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "jpg, jpeg, png or webp, max 5MB"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Router /api/uploads [post]
func (h *UploadHandler) UploadImage(ctx *fiber.Ctx) error {
	filename, data, err := readUpload(ctx, allowedImages, maxImageSize, msgImagesOnly)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, err := h.uploader.UploadBytes(ctx.UserContext(), uploadFolder, name, data)
	if err != nil {
		h.log.Error("upload image", zap.String("file", filename), zap.Error(err))
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, services.MsgInternal)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, UploadResponse{URL: url})
}
