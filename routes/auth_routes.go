package routes

import (
	"github.com/atoile/micro_naija/handlers"
	"github.com/atoile/micro_naija/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/verify-2fa", handlers.VerifyTwoFactor)
	auth.Post("/logout", middleware.Protected(), middleware.SessionActive(), handlers.Logout)
	auth.Get("/me", middleware.Protected(), middleware.SessionActive(), handlers.GetMe)
	auth.Put("/me", middleware.Protected(), middleware.SessionActive(), handlers.UpdateProfile)
	auth.Put("/password", middleware.Protected(), middleware.SessionActive(), handlers.ChangePassword)
}
