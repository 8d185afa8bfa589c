package routes

import (
	"github.com/atoile/micro_naija/handlers"
	"github.com/atoile/micro_naija/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.SessionActive(), middleware.AdminRequired())

	admin.Get("/dashboard", handlers.GetDashboard)
	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)
	admin.Post("/media/delete", handlers.DeleteMedia)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	news := admin.Group("/news")
	news.Get("", handlers.ListNewsAdmin)
	news.Post("", handlers.CreateNews)
	news.Put("/:id", handlers.UpdateNews)
	news.Delete("/:id", handlers.DeleteNews)
	news.Post("/:id/publish", handlers.PublishNews)
	news.Post("/:id/cover", handlers.UploadNewsCover)

	podcasts := admin.Group("/podcasts")
	podcasts.Get("", handlers.ListPodcastsAdmin)
	podcasts.Post("", handlers.CreatePodcast)
	podcasts.Post("/upload/:folder", handlers.UploadPodcastMedia)
	podcasts.Put("/:id", handlers.UpdatePodcast)
	podcasts.Delete("/:id", handlers.DeletePodcast)
	podcasts.Post("/:id/publish", handlers.PublishPodcast)

	exercises := admin.Group("/exercises")
	exercises.Get("", handlers.ListExercisesAdmin)
	exercises.Post("", handlers.CreateExercise)
	exercises.Post("/import", handlers.ImportExercisesDocx)
	exercises.Post("/validate", handlers.ValidateExerciseQuestions)
	exercises.Put("/:id", handlers.UpdateExercise)
	exercises.Delete("/:id", handlers.DeleteExercise)
	exercises.Post("/:id/publish", handlers.PublishExercise)

	galleries := admin.Group("/galleries")
	galleries.Get("", handlers.ListGalleriesAdmin)
	galleries.Post("", handlers.CreateGallery)
	galleries.Post("/upload", handlers.UploadGalleryMedia)
	galleries.Put("/:id", handlers.UpdateGallery)
	galleries.Delete("/:id", handlers.DeleteGallery)
	galleries.Post("/:id/publish", handlers.PublishGallery)

	pedagogies := admin.Group("/pedagogies")
	pedagogies.Get("", handlers.ListPedagogiesAdmin)
	pedagogies.Post("", handlers.CreatePedagogy)
	pedagogies.Post("/upload", handlers.UploadPedagogyPDF)
	pedagogies.Put("/:id", handlers.UpdatePedagogy)
	pedagogies.Delete("/:id", handlers.DeletePedagogy)
	pedagogies.Post("/:id/publish", handlers.PublishPedagogy)

	resources := admin.Group("/resources")
	resources.Get("", handlers.ListResourcesAdmin)
	resources.Post("", handlers.CreateResource)
	resources.Put("/:id", handlers.UpdateResource)
	resources.Delete("/:id", handlers.DeleteResource)
	resources.Post("/:id/publish", handlers.PublishResource)
}
