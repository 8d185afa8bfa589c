package handlers

import (
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/services"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

type PodcastRequest struct {
	Title         string  `json:"title" validate:"required,max=255"`
	Description   *string `json:"description"`
	AudioURL      *string `json:"audio_url" validate:"omitempty,url"`
	VideoURL      *string `json:"video_url" validate:"omitempty,url"`
	MediaPublicID *string `json:"media_public_id"`
	MediaType     string  `json:"media_type" validate:"omitempty,oneof=audio video"`
	Duration      int     `json:"duration" validate:"gte=0"`
	Transcript    *string `json:"transcript"`
	Topic         *string `json:"topic" validate:"omitempty,max=255"`
	CEFRLevel     *string `json:"cefr_level" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Audience      *string `json:"audience" validate:"omitempty,max=100"`
	Downloadable  bool    `json:"downloadable"`
	Status        string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (r PodcastRequest) apply(p *models.Podcast) {
	p.Title = r.Title
	p.Description = r.Description
	p.AudioURL = r.AudioURL
	p.VideoURL = r.VideoURL
	p.MediaPublicID = r.MediaPublicID
	p.Duration = r.Duration
	p.Transcript = r.Transcript
	p.Topic = r.Topic
	p.CEFRLevel = r.CEFRLevel
	p.State = r.State
	p.Audience = r.Audience
	p.Downloadable = r.Downloadable
	if r.MediaType != "" {
		p.MediaType = r.MediaType
	}
	applyStatus(r.Status, &p.Status, &p.PublishedAt)
}

// Audio files are stored under the video resource type as well.
const podcastResourceType = "video"

func ListPodcastsAdmin(c *fiber.Ctx) error {
	var podcasts []models.Podcast
	if err := adminListQuery(c, database.DB).Find(&podcasts).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	return c.JSON(podcasts)
}

func CreatePodcast(c *fiber.Ctx) error {
	var req PodcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug, err := uniqueSlug("podcasts", req.Title, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
	}

	podcast := models.Podcast{Slug: slug, MediaType: "audio", Status: models.StatusDraft}
	req.apply(&podcast)

	if err := database.DB.Create(&podcast).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	recordActivity(c, websocket.EventCreated, models.ContentPodcast, podcast.ID, podcast.Title)
	return c.Status(fiber.StatusCreated).JSON(podcast)
}

func UpdatePodcast(c *fiber.Ctx) error {
	var podcast models.Podcast
	if err := findByID(c, &podcast); err != nil {
		return dbError(c, err, "Podcast")
	}

	var req PodcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != podcast.Title {
		slug, err := uniqueSlug("podcasts", req.Title, podcast.ID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
		}
		podcast.Slug = slug
	}
	if podcast.MediaPublicID != nil && (req.MediaPublicID == nil || *req.MediaPublicID != *podcast.MediaPublicID) {
		destroyMedia(podcast.MediaPublicID, podcastResourceType)
	}
	req.apply(&podcast)

	if err := database.DB.Save(&podcast).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentPodcast, podcast.ID, podcast.Title)
	return c.JSON(podcast)
}

func DeletePodcast(c *fiber.Ctx) error {
	var podcast models.Podcast
	if err := findByID(c, &podcast); err != nil {
		return dbError(c, err, "Podcast")
	}
	if err := database.DB.Model(&models.Exercise{}).Where("podcast_id = ?", podcast.ID).Update("podcast_id", nil).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	if err := database.DB.Delete(&podcast).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	destroyMedia(podcast.MediaPublicID, podcastResourceType)

	recordActivity(c, websocket.EventDeleted, models.ContentPodcast, podcast.ID, podcast.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishPodcast(c *fiber.Ctx) error {
	var podcast models.Podcast
	if err := findByID(c, &podcast); err != nil {
		return dbError(c, err, "Podcast")
	}
	if podcast.AudioURL == nil && podcast.VideoURL == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Upload the podcast media before publishing"})
	}
	applyStatus(models.StatusPublished, &podcast.Status, &podcast.PublishedAt)
	if err := database.DB.Save(&podcast).Error; err != nil {
		return dbError(c, err, "Podcast")
	}
	recordActivity(c, websocket.EventPublished, models.ContentPodcast, podcast.ID, podcast.Title)
	return c.JSON(podcast)
}

// UploadPodcastMedia stores the multipart "file" under the audio or video folder
// and returns its hosted location for a later create or update.
func UploadPodcastMedia(c *fiber.Ctx) error {
	var folder, prefix string
	switch c.Params("folder") {
	case "audio":
		folder, prefix = services.FolderPodcastAudio, "audio/"
	case "video":
		folder, prefix = services.FolderPodcastVideo, "video/"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Folder must be audio or video"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Media file is required"})
	}
	if !hasPrefixFold(file.Header.Get("Content-Type"), prefix) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported media type for " + c.Params("folder")})
	}

	uploaded, err := uploadFormFile(file, folder, podcastResourceType)
	if err != nil {
		return uploadFailed(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url":           uploaded.SecureURL,
		"public_id":     uploaded.PublicID,
		"resource_type": uploaded.ResourceType,
		"format":        uploaded.Format,
		"media_type":    c.Params("folder"),
	})
}
