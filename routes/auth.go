package routes

import (
	auth_handlers "dugun.site/handlers/auth"
	"dugun.site/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, deps Dependencies, mw *middlewares.Auth) {
	authHandler := auth_handlers.NewAuthHandler(deps.Auth, deps.Sessions, mw)
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
}
