package handlers

import (
	"path/filepath"
	"strings"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/services"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

// PDFs are delivered through the image pipeline so they can be previewed inline.
const pedagogyResourceType = "image"

type PedagogyRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Description  *string `json:"description"`
	Level        *string `json:"level" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	SkillType    *string `json:"skill_type" validate:"omitempty,max=50"`
	Theme        *string `json:"theme" validate:"omitempty,max=255"`
	Content      *string `json:"content"`
	URL          *string `json:"url" validate:"omitempty,url"`
	PDFViewURL   *string `json:"pdf_view_url" validate:"omitempty,url"`
	PDFPublicID  *string `json:"pdf_public_id"`
	Downloadable *bool   `json:"downloadable"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (r PedagogyRequest) apply(p *models.Pedagogy) {
	p.Title = r.Title
	p.Description = r.Description
	p.Level = r.Level
	p.SkillType = r.SkillType
	p.Theme = r.Theme
	p.Content = r.Content
	p.URL = r.URL
	p.PDFViewURL = r.PDFViewURL
	p.PDFPublicID = r.PDFPublicID
	if r.Downloadable != nil {
		p.Downloadable = *r.Downloadable
	}
	applyStatus(r.Status, &p.Status, &p.PublishedAt)
}

func ListPedagogiesAdmin(c *fiber.Ctx) error {
	var items []models.Pedagogy
	if err := adminListQuery(c, database.DB).Find(&items).Error; err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	return c.JSON(items)
}

func CreatePedagogy(c *fiber.Ctx) error {
	var req PedagogyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slug, err := uniqueSlug("pedagogies", req.Title, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
	}

	item := models.Pedagogy{Slug: slug, Downloadable: true, Status: models.StatusDraft}
	req.apply(&item)

	if err := database.DB.Create(&item).Error; err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	recordActivity(c, websocket.EventCreated, models.ContentPedagogy, item.ID, item.Title)
	return c.Status(fiber.StatusCreated).JSON(item)
}

func UpdatePedagogy(c *fiber.Ctx) error {
	var item models.Pedagogy
	if err := findByID(c, &item); err != nil {
		return dbError(c, err, "Pedagogy resource")
	}

	var req PedagogyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != item.Title {
		slug, err := uniqueSlug("pedagogies", req.Title, item.ID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
		}
		item.Slug = slug
	}
	if item.PDFPublicID != nil && (req.PDFPublicID == nil || *req.PDFPublicID != *item.PDFPublicID) {
		destroyMedia(item.PDFPublicID, pedagogyResourceType)
	}
	req.apply(&item)

	if err := database.DB.Save(&item).Error; err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentPedagogy, item.ID, item.Title)
	return c.JSON(item)
}

func DeletePedagogy(c *fiber.Ctx) error {
	var item models.Pedagogy
	if err := findByID(c, &item); err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	if err := database.DB.Delete(&item).Error; err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	destroyMedia(item.PDFPublicID, pedagogyResourceType)

	recordActivity(c, websocket.EventDeleted, models.ContentPedagogy, item.ID, item.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishPedagogy(c *fiber.Ctx) error {
	var item models.Pedagogy
	if err := findByID(c, &item); err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	applyStatus(models.StatusPublished, &item.Status, &item.PublishedAt)
	if err := database.DB.Save(&item).Error; err != nil {
		return dbError(c, err, "Pedagogy resource")
	}
	recordActivity(c, websocket.EventPublished, models.ContentPedagogy, item.ID, item.Title)
	return c.JSON(item)
}

// UploadPedagogyPDF stores the multipart "pdf" file.
func UploadPedagogyPDF(c *fiber.Ctx) error {
	file, err := c.FormFile("pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "PDF file is required"})
	}
	if file.Header.Get("Content-Type") != "application/pdf" && !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only PDF files are supported"})
	}

	uploaded, err := uploadFormFile(file, services.FolderPedagogies, pedagogyResourceType)
	if err != nil {
		return uploadFailed(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"pdf_view_url":  uploaded.SecureURL,
		"pdf_public_id": uploaded.PublicID,
	})
}
