package handlers

import (
	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

type ResourceRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	URL         string  `json:"url" validate:"required,url"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Status      string  `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func ListResourcesAdmin(c *fiber.Ctx) error {
	var resources []models.Resource
	if err := adminListQuery(c, database.DB).Find(&resources).Error; err != nil {
		return dbError(c, err, "Resource")
	}
	return c.JSON(resources)
}

func CreateResource(c *fiber.Ctx) error {
	var req ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := models.Resource{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.StatusDraft,
	}
	applyStatus(req.Status, &resource.Status, &resource.PublishedAt)

	if err := database.DB.Create(&resource).Error; err != nil {
		return dbError(c, err, "Resource")
	}
	recordActivity(c, websocket.EventCreated, models.ContentResource, resource.ID, resource.Title)
	return c.Status(fiber.StatusCreated).JSON(resource)
}

func UpdateResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := findByID(c, &resource); err != nil {
		return dbError(c, err, "Resource")
	}

	var req ResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource.Title = req.Title
	resource.URL = req.URL
	resource.Description = req.Description
	resource.Category = req.Category
	applyStatus(req.Status, &resource.Status, &resource.PublishedAt)

	if err := database.DB.Save(&resource).Error; err != nil {
		return dbError(c, err, "Resource")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentResource, resource.ID, resource.Title)
	return c.JSON(resource)
}

func DeleteResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := findByID(c, &resource); err != nil {
		return dbError(c, err, "Resource")
	}
	if err := database.DB.Delete(&resource).Error; err != nil {
		return dbError(c, err, "Resource")
	}
	recordActivity(c, websocket.EventDeleted, models.ContentResource, resource.ID, resource.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishResource(c *fiber.Ctx) error {
	var resource models.Resource
	if err := findByID(c, &resource); err != nil {
		return dbError(c, err, "Resource")
	}
	applyStatus(models.StatusPublished, &resource.Status, &resource.PublishedAt)
	if err := database.DB.Save(&resource).Error; err != nil {
		return dbError(c, err, "Resource")
	}
	recordActivity(c, websocket.EventPublished, models.ContentResource, resource.ID, resource.Title)
	return c.JSON(resource)
}
