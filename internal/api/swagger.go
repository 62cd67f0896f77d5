package api

import (
	"github.com/SundayYogurt/pim_service/docs"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

func RegisterSwagger(app *fiber.App) {
	// empty host: the UI calls whatever host served it, http or https
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.Schemes = []string{"https", "http"}

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}
