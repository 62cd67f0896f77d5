// @title PIM Service API
// @version 1.0
// @description Products, variants, categories, attributes, clients and their audit trail.
// @host localhost:3000
// @BasePath /
// @schemes http
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <JWT>

package api

import (
	"github.com/SundayYogurt/pim_service/config"
	"github.com/SundayYogurt/pim_service/internal/api/rest/handlers"
	"github.com/SundayYogurt/pim_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/helper/utils"
	"github.com/SundayYogurt/pim_service/internal/interfaces"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const bodyLimit = 12 * 1024 * 1024

// Deps is everything NewApp needs from the outside. The database handle is
// opened once by the caller and shared by every repository.
type Deps struct {
	Config   config.Config
	DB       *gorm.DB
	Recorder interfaces.AuditRecorder
	Uploader interfaces.Uploader
	Log      *zap.Logger
}

func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	log := d.Log

	app := fiber.New(fiber.Config{
		AppName:      "pim",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.BaseURL != "*",
	}))

	RegisterSwagger(app)
	app.Static("/uploads", cfg.UploadDir)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(d.DB)
	clientRepo := repository.NewClientRepository(d.DB)
	categoryRepo := repository.NewCategoryRepository(d.DB)
	attributeRepo := repository.NewAttributeRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	variantRepo := repository.NewVariantRepository(d.DB)
	auditRepo := repository.NewAuditRepository(d.DB)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper, d.Recorder, log)
	productSvc := services.NewProductService(productRepo, clientRepo, categoryRepo, d.Uploader, d.Recorder, log)
	variantSvc := services.NewVariantService(variantRepo, productRepo, categoryRepo, attributeRepo, d.Recorder, log)
	categorySvc := services.NewCategoryService(categoryRepo, d.Recorder, log)
	attributeSvc := services.NewAttributeService(attributeRepo, d.Recorder, log)
	clientSvc := services.NewClientService(clientRepo, d.Recorder, log)
	auditSvc := services.NewAuditService(auditRepo, log)
	sheetSvc := services.NewSpreadsheetService(productSvc, productRepo, cfg.UploadDir, log)

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc)

	api := app.Group("/api")
	userHandler.SetupAuthRoutes(api)

	api.Use(middleware.AuthMiddleware(authHelper))
	userHandler.SetupRoutes(api)
	handlers.NewProductHandler(productSvc, sheetSvc).SetupRoutes(api)
	handlers.NewVariantHandler(variantSvc).SetupRoutes(api)
	handlers.NewCategoryHandler(categorySvc).SetupRoutes(api)
	handlers.NewAttributeHandler(attributeSvc).SetupRoutes(api)
	handlers.NewClientHandler(clientSvc).SetupRoutes(api)
	handlers.NewAuditHandler(auditSvc).SetupRoutes(api)
	handlers.NewUploadHandler(d.Uploader, log).SetupRoutes(api)

	return app
}

// errorHandler keeps the {error} envelope for errors fiber raises itself
// (unknown route, body too large) and hides anything unexpected.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			return utils.ResponseError(ctx, e.Code, e.Message)
		}
		log.Error("unhandled error", zap.String("path", ctx.Path()), zap.Error(err))
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, services.MsgInternal)
	}
}
