package handlers

import (
	"fmt"
	"strconv"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// publicFilters maps the query parameters each public list accepts onto columns.
var publicFilters = map[string][]string{
	models.ContentNews:     {"category", "language", "state"},
	models.ContentPodcast:  {"topic", "cefr_level", "media_type", "state", "audience"},
	models.ContentExercise: {"podcast_id", "exercise_type", "difficulty"},
	models.ContentGallery:  {"media_type", "category", "state"},
	models.ContentPedagogy: {"level", "skill_type", "theme"},
	models.ContentResource: {"category"},
}

// uuidFilters are the filter columns holding ids.
var uuidFilters = map[string]bool{"podcast_id": true}

func publicListQuery(c *fiber.Ctx, contentType string) (*gorm.DB, error) {
	q := publishedQuery(database.DB)
	for _, column := range publicFilters[contentType] {
		v := c.Query(column)
		if v == "" {
			continue
		}
		if uuidFilters[column] {
			id, err := uuid.Parse(v)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q", column, v)
			}
			v = id.String()
		}
		q = q.Where(column+" = ?", v)
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		q = q.Limit(limit)
	}
	return q, nil
}

func listPublished[T any](c *fiber.Ctx, contentType, what string) error {
	q, err := publicListQuery(c, contentType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filter value", "details": err.Error()})
	}
	var items []T
	if err := q.Find(&items).Error; err != nil {
		return dbError(c, err, what)
	}
	return c.JSON(items)
}

func getPublished[T any](c *fiber.Ctx, column, value, what string) error {
	var item T
	if err := database.DB.Where(column+" = ? AND status = ?", value, models.StatusPublished).First(&item).Error; err != nil {
		return dbError(c, err, what)
	}
	return c.JSON(item)
}

func ListPublishedNews(c *fiber.Ctx) error {
	return listPublished[models.NewsArticle](c, models.ContentNews, "News")
}

func GetPublishedNews(c *fiber.Ctx) error {
	return getPublished[models.NewsArticle](c, "slug", c.Params("slug"), "News")
}

func ListPublishedPodcasts(c *fiber.Ctx) error {
	return listPublished[models.Podcast](c, models.ContentPodcast, "Podcast")
}

func GetPublishedPodcast(c *fiber.Ctx) error {
	return getPublished[models.Podcast](c, "slug", c.Params("slug"), "Podcast")
}

func ListPublishedGalleries(c *fiber.Ctx) error {
	return listPublished[models.Gallery](c, models.ContentGallery, "Gallery item")
}

func GetPublishedGallery(c *fiber.Ctx) error {
	return getPublished[models.Gallery](c, "slug", c.Params("slug"), "Gallery item")
}

func ListPublishedPedagogies(c *fiber.Ctx) error {
	return listPublished[models.Pedagogy](c, models.ContentPedagogy, "Pedagogy resource")
}

func GetPublishedPedagogy(c *fiber.Ctx) error {
	return getPublished[models.Pedagogy](c, "slug", c.Params("slug"), "Pedagogy resource")
}

func ListPublishedResources(c *fiber.Ctx) error {
	return listPublished[models.Resource](c, models.ContentResource, "Resource")
}

// Resources have no slug; they are addressed by id.
func GetPublishedResource(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return dbError(c, err, "Resource")
	}
	return getPublished[models.Resource](c, "id", id.String(), "Resource")
}

func ListPublishedExercises(c *fiber.Ctx) error {
	q, err := publicListQuery(c, models.ContentExercise)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filter value", "details": err.Error()})
	}
	var exercises []models.Exercise
	if err := q.Find(&exercises).Error; err != nil {
		return dbError(c, err, "Exercise")
	}

	views := make([]ExerciseView, 0, len(exercises))
	for _, e := range exercises {
		view, err := publicExerciseView(e)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt exercise content"})
		}
		views = append(views, view)
	}
	return c.JSON(views)
}

func GetPublishedExercise(c *fiber.Ctx) error {
	var exercise models.Exercise
	if err := database.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.StatusPublished).First(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	view, err := publicExerciseView(exercise)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt exercise content"})
	}
	return c.JSON(view)
}

// ListPodcastExercises returns the published exercises attached to a podcast.
func ListPodcastExercises(c *fiber.Ctx) error {
	var podcast models.Podcast
	if err := database.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.StatusPublished).First(&podcast).Error; err != nil {
		return dbError(c, err, "Podcast")
	}

	var exercises []models.Exercise
	if err := publishedQuery(database.DB).Where("podcast_id = ?", podcast.ID).Find(&exercises).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	views := make([]ExerciseView, 0, len(exercises))
	for _, e := range exercises {
		view, err := publicExerciseView(e)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt exercise content"})
		}
		views = append(views, view)
	}
	return c.JSON(views)
}
