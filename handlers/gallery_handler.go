package handlers

import (
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/services"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

type GalleryRequest struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Description   *string `json:"description"`
	MediaType     string  `json:"media_type" validate:"omitempty,oneof=image video"`
	MediaURL      string  `json:"media_url" validate:"required,url"`
	MediaPublicID *string `json:"media_public_id"`
	ThumbnailURL  *string `json:"thumbnail_url" validate:"omitempty,url"`
	Category      *string `json:"category" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Status        string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (r GalleryRequest) apply(g *models.Gallery) {
	g.Title = r.Title
	g.Description = r.Description
	g.MediaURL = r.MediaURL
	g.MediaPublicID = r.MediaPublicID
	g.ThumbnailURL = r.ThumbnailURL
	g.Category = r.Category
	g.State = r.State
	if r.MediaType != "" {
		g.MediaType = r.MediaType
	}
	applyStatus(r.Status, &g.Status, &g.PublishedAt)
}

func ListGalleriesAdmin(c *fiber.Ctx) error {
	var galleries []models.Gallery
	q := adminListQuery(c, database.DB)
	if mediaType := c.Query("media_type"); mediaType != "" {
		q = q.Where("media_type = ?", mediaType)
	}
	if err := q.Find(&galleries).Error; err != nil {
		return dbError(c, err, "Gallery item")
	}
	return c.JSON(galleries)
}

func CreateGallery(c *fiber.Ctx) error {
	var req GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug, err := uniqueSlug("galleries", req.Title, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
	}

	gallery := models.Gallery{Slug: slug, MediaType: "image", Status: models.StatusDraft}
	req.apply(&gallery)

	if err := database.DB.Create(&gallery).Error; err != nil {
		return dbError(c, err, "Gallery item")
	}
	recordActivity(c, websocket.EventCreated, models.ContentGallery, gallery.ID, gallery.Title)
	return c.Status(fiber.StatusCreated).JSON(gallery)
}

func UpdateGallery(c *fiber.Ctx) error {
	var gallery models.Gallery
	if err := findByID(c, &gallery); err != nil {
		return dbError(c, err, "Gallery item")
	}

	var req GalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != gallery.Title {
		slug, err := uniqueSlug("galleries", req.Title, gallery.ID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
		}
		gallery.Slug = slug
	}
	if gallery.MediaPublicID != nil && (req.MediaPublicID == nil || *req.MediaPublicID != *gallery.MediaPublicID) {
		destroyMedia(gallery.MediaPublicID, gallery.MediaType)
	}
	req.apply(&gallery)

	if err := database.DB.Save(&gallery).Error; err != nil {
		return dbError(c, err, "Gallery item")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentGallery, gallery.ID, gallery.Title)
	return c.JSON(gallery)
}

func DeleteGallery(c *fiber.Ctx) error {
	var gallery models.Gallery
	if err := findByID(c, &gallery); err != nil {
		return dbError(c, err, "Gallery item")
	}
	if err := database.DB.Delete(&gallery).Error; err != nil {
		return dbError(c, err, "Gallery item")
	}
	destroyMedia(gallery.MediaPublicID, gallery.MediaType)

	recordActivity(c, websocket.EventDeleted, models.ContentGallery, gallery.ID, gallery.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishGallery(c *fiber.Ctx) error {
	var gallery models.Gallery
	if err := findByID(c, &gallery); err != nil {
		return dbError(c, err, "Gallery item")
	}
	applyStatus(models.StatusPublished, &gallery.Status, &gallery.PublishedAt)
	if err := database.DB.Save(&gallery).Error; err != nil {
		return dbError(c, err, "Gallery item")
	}
	recordActivity(c, websocket.EventPublished, models.ContentGallery, gallery.ID, gallery.Title)
	return c.JSON(gallery)
}

// UploadGalleryMedia stores the multipart "media" image or video.
func UploadGalleryMedia(c *fiber.Ctx) error {
	file, err := c.FormFile("media")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Media file is required"})
	}

	var mediaType string
	switch contentType := file.Header.Get("Content-Type"); {
	case hasPrefixFold(contentType, "image/"):
		mediaType = "image"
	case hasPrefixFold(contentType, "video/"):
		mediaType = "video"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Gallery media must be an image or a video"})
	}

	uploaded, err := uploadFormFile(file, services.FolderGalleries, mediaType)
	if err != nil {
		return uploadFailed(c, err)
	}

	resp := fiber.Map{
		"url":        uploaded.SecureURL,
		"public_id":  uploaded.PublicID,
		"media_type": mediaType,
	}
	if mediaType == "image" {
		if thumb, err := services.Media.URL(uploaded.PublicID, services.Transform{Width: 400, Height: 300}); err == nil {
			resp["thumbnail_url"] = thumb
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
