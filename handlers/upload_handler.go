package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atoile/micro_naija/services"
	"github.com/gofiber/fiber/v2"
)

// GenerateUploadSignature creates a secure signature for a direct browser upload
// into one of the media folders.
func GenerateUploadSignature(c *fiber.Ctx) error {
	folder := c.Query("folder")
	if _, err := services.MediaFolder(folder); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown upload folder"})
	}

	sig, err := services.Media.SignUpload(folder, time.Now().Unix())
	if err != nil {
		if errors.Is(err, services.ErrMediaNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media storage is not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}
	return c.JSON(sig)
}

type DeleteMediaRequest struct {
	PublicID     string `json:"publicId" validate:"required"`
	ResourceType string `json:"resourceType" validate:"omitempty,oneof=image video raw"`
}

func DeleteMedia(c *fiber.Ctx) error {
	var req DeleteMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := services.Media.Destroy(ctx, req.PublicID, req.ResourceType); err != nil {
		if errors.Is(err, services.ErrMediaNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media storage is not configured"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to delete media"})
	}
	return c.JSON(fiber.Map{"message": "Media deleted"})
}

// GetOptimizedMediaURL answers with a delivery URL for an image; ?w=, ?h=,
// ?crop=, ?quality= and ?format= map onto the CDN transformation.
func GetOptimizedMediaURL(c *fiber.Ctx) error {
	publicID := c.Params("*")
	if publicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Public ID is required"})
	}

	w, _ := strconv.Atoi(c.Query("w"))
	h, _ := strconv.Atoi(c.Query("h"))
	url, err := services.Media.URL(publicID, services.Transform{
		Width:   w,
		Height:  h,
		Crop:    c.Query("crop"),
		Quality: c.Query("quality"),
		Format:  c.Query("format"),
	})
	if err != nil {
		if errors.Is(err, services.ErrMediaNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media storage is not configured"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build media URL"})
	}
	return c.JSON(fiber.Map{"url": url})
}
