package routes

import (
	"github.com/atoile/micro_naija/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ActivityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Use("/admin/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/admin/ws", websocket.New(handlers.ServeActivityWs))
}
