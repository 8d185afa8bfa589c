package routes

import (
	"github.com/atoile/micro_naija/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/news", handlers.ListPublishedNews)
	api.Get("/news/:slug", handlers.GetPublishedNews)

	api.Get("/podcasts", handlers.ListPublishedPodcasts)
	api.Get("/podcasts/:slug", handlers.GetPublishedPodcast)
	api.Get("/podcasts/:slug/exercises", handlers.ListPodcastExercises)

	api.Get("/exercises", handlers.ListPublishedExercises)
	api.Get("/exercises/:slug", handlers.GetPublishedExercise)
	api.Post("/exercises/:slug/check", handlers.CheckExerciseAnswers)

	api.Get("/galleries", handlers.ListPublishedGalleries)
	api.Get("/galleries/:slug", handlers.GetPublishedGallery)

	api.Get("/pedagogies", handlers.ListPublishedPedagogies)
	api.Get("/pedagogies/:slug", handlers.GetPublishedPedagogy)

	api.Get("/resources", handlers.ListPublishedResources)
	api.Get("/resources/:id", handlers.GetPublishedResource)

	api.Get("/media/url/*", handlers.GetOptimizedMediaURL)
}
