package routes

import (
	public_handlers "dugun.site/handlers/public"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes misafirlere açık sayfa, API, akış ve medya rotaları.
func registerPublicRoutes(app *fiber.App, deps Dependencies) {
	publicHandler := public_handlers.NewPublicHandler(deps.Store, deps.Remote, deps.RSVPs, deps.Guestbook, deps.Media)

	app.Get("/", publicHandler.Home)
	app.Get("/v0/b/:bucket/o/*", publicHandler.Media)

	api := app.Group("/api")
	api.Get("/content", publicHandler.Content)
	api.Post("/rsvps", publicHandler.SubmitRSVP)
	api.Get("/portal", publicHandler.Portal)
	api.Post("/portal/:id/respond", publicHandler.Respond)
	api.Get("/guestbook", publicHandler.Guestbook)
	api.Post("/guestbook", publicHandler.SignGuestbook)
	api.Get("/feeds/:collection", publicHandler.Feed)
}
