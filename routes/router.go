package routes

import (
	public_handlers "dugun.site/handlers/public"
	"dugun.site/middlewares"
	"dugun.site/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Dependencies rotaların kullandığı servisler; main.go'da kurulur.
type Dependencies struct {
	Store     services.IAppStore
	Remote    services.IRemoteStore
	Auth      services.IAuthService
	Sessions  *session.Store
	RSVPs     services.IRSVPService
	Guests    services.IGuestService
	Guestbook services.IGuestbookService
	Notes     services.INoteService
	Editor    services.IContentEditor
	Gallery   services.IGalleryService
	Media     public_handlers.MediaStore

	// AccessLog false ise istek logları yazılmaz (testler).
	AccessLog bool
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	// --- Genel Middleware'ler ---
	app.Use(recoverMiddleware.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}

	authMiddleware := middlewares.NewAuth(deps.Sessions, deps.Auth)

	// --- Rota Grupları ---
	registerMetricsRoute(app)
	registerAuthRoutes(app, deps, authMiddleware)
	registerPanelRoutes(app, deps, authMiddleware)
	registerPublicRoutes(app, deps)

	// --- 404 Handler ---
	app.Use(notFoundHandler)
}

func registerMetricsRoute(app *fiber.App) {
	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "text/html":
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Page not found"}, "layouts/error_layout")
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	}
}
