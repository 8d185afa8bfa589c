package handlers

import (
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/services"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

type NewsRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Excerpt      *string `json:"excerpt"`
	Content      string  `json:"content" validate:"required"`
	CoverImage   *string `json:"cover_image" validate:"omitempty,url"`
	CoverImageID *string `json:"cover_image_id"`
	Category     *string `json:"category" validate:"omitempty,max=100"`
	State        *string `json:"state" validate:"omitempty,max=100"`
	Language     string  `json:"language" validate:"omitempty,oneof=en fr"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func ListNewsAdmin(c *fiber.Ctx) error {
	var articles []models.NewsArticle
	if err := adminListQuery(c, database.DB).Find(&articles).Error; err != nil {
		return dbError(c, err, "News")
	}
	return c.JSON(articles)
}

func CreateNews(c *fiber.Ctx) error {
	var req NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	authorID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user"})
	}
	slug, err := uniqueSlug("news_articles", req.Title, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
	}

	article := models.NewsArticle{
		Title:        req.Title,
		Slug:         slug,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		CoverImage:   req.CoverImage,
		CoverImageID: req.CoverImageID,
		Category:     req.Category,
		State:        req.State,
		Language:     "en",
		Status:       models.StatusDraft,
		AuthorID:     authorID,
	}
	if req.Language != "" {
		article.Language = req.Language
	}
	applyStatus(req.Status, &article.Status, &article.PublishedAt)

	if err := database.DB.Create(&article).Error; err != nil {
		return dbError(c, err, "News")
	}
	recordActivity(c, websocket.EventCreated, models.ContentNews, article.ID, article.Title)
	return c.Status(fiber.StatusCreated).JSON(article)
}

func UpdateNews(c *fiber.Ctx) error {
	var article models.NewsArticle
	if err := findByID(c, &article); err != nil {
		return dbError(c, err, "News")
	}

	var req NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != article.Title {
		slug, err := uniqueSlug("news_articles", req.Title, article.ID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
		}
		article.Slug = slug
	}
	if req.CoverImageID != nil && article.CoverImageID != nil && *req.CoverImageID != *article.CoverImageID {
		destroyMedia(article.CoverImageID, "image")
	}

	article.Title = req.Title
	article.Excerpt = req.Excerpt
	article.Content = req.Content
	article.Category = req.Category
	article.State = req.State
	if req.CoverImage != nil {
		article.CoverImage = req.CoverImage
		article.CoverImageID = req.CoverImageID
	}
	if req.Language != "" {
		article.Language = req.Language
	}
	applyStatus(req.Status, &article.Status, &article.PublishedAt)

	if err := database.DB.Save(&article).Error; err != nil {
		return dbError(c, err, "News")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentNews, article.ID, article.Title)
	return c.JSON(article)
}

func DeleteNews(c *fiber.Ctx) error {
	var article models.NewsArticle
	if err := findByID(c, &article); err != nil {
		return dbError(c, err, "News")
	}
	if err := database.DB.Delete(&article).Error; err != nil {
		return dbError(c, err, "News")
	}
	destroyMedia(article.CoverImageID, "image")

	recordActivity(c, websocket.EventDeleted, models.ContentNews, article.ID, article.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishNews(c *fiber.Ctx) error {
	var article models.NewsArticle
	if err := findByID(c, &article); err != nil {
		return dbError(c, err, "News")
	}
	applyStatus(models.StatusPublished, &article.Status, &article.PublishedAt)
	if err := database.DB.Save(&article).Error; err != nil {
		return dbError(c, err, "News")
	}
	recordActivity(c, websocket.EventPublished, models.ContentNews, article.ID, article.Title)
	return c.JSON(article)
}

// UploadNewsCover replaces an article's cover with the multipart "cover_image" file.
func UploadNewsCover(c *fiber.Ctx) error {
	var article models.NewsArticle
	if err := findByID(c, &article); err != nil {
		return dbError(c, err, "News")
	}

	file, err := c.FormFile("cover_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cover image is required"})
	}
	if !hasPrefixFold(file.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cover must be an image"})
	}

	uploaded, err := uploadFormFile(file, services.FolderNews, "image")
	if err != nil {
		return uploadFailed(c, err)
	}
	destroyMedia(article.CoverImageID, "image")

	article.CoverImage = &uploaded.SecureURL
	article.CoverImageID = &uploaded.PublicID
	if err := database.DB.Save(&article).Error; err != nil {
		return dbError(c, err, "News")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentNews, article.ID, article.Title)
	return c.JSON(article)
}
