package handlers

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/services"
	"github.com/atoile/micro_naija/utils"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const mediaTimeout = 2 * time.Minute

func currentClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := currentClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, _ := claims["user_id"].(string)
	return uuid.Parse(id)
}

// adminListQuery applies the optional ?status= and ?q= filters of admin lists.
func adminListQuery(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	return db.Order("created_at desc")
}

// parseUUIDParam reads a UUID route parameter. A malformed id can never match
// a row, so it is reported as gorm.ErrRecordNotFound.
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return id, nil
}

// findByID loads the row addressed by the :id route parameter.
func findByID(c *fiber.Ctx, dest interface{}) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	return database.DB.First(dest, "id = ?", id).Error
}

func publishedQuery(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", models.StatusPublished).Order("published_at desc")
}

// applyStatus sets status and stamps the first publication time.
func applyStatus(status string, current *string, publishedAt **time.Time) {
	if status == "" {
		return
	}
	*current = status
	if status == models.StatusPublished && *publishedAt == nil {
		now := time.Now()
		*publishedAt = &now
	}
}

func uniqueSlug(table, title, exceptID string) (string, error) {
	return utils.GenerateUniqueSlug(database.DB, table, utils.Slugify(title), exceptID)
}

func dbError(c *fiber.Ctx, err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": what + " not found"})
	}
	log.Printf("Database error on %s: %v", what, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
}

func recordActivity(c *fiber.Ctx, eventType, contentType string, id uuid.UUID, title string) {
	ev := websocket.ActivityEvent{
		Type:        eventType,
		ContentType: contentType,
		ID:          id.String(),
		Title:       title,
	}
	if actor, err := currentUserID(c); err == nil {
		ev.ActorID = actor.String()
	}
	websocket.Publish(ev)
}

func uploadFormFile(file *multipart.FileHeader, folder, resourceType string) (*services.UploadedMedia, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), mediaTimeout)
	defer cancel()
	return services.Media.Upload(ctx, f, services.UploadOptions{
		Folder:       folder,
		ResourceType: resourceType,
	})
}

func uploadFailed(c *fiber.Ctx, err error) error {
	log.Printf("Media upload failed: %v", err)
	if errors.Is(err, services.ErrMediaNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media storage is not configured"})
	}
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to upload file"})
}

// destroyMedia removes hosted media in the background; failures only leave an
// orphaned file behind.
func destroyMedia(publicID *string, resourceType string) {
	if publicID == nil || *publicID == "" {
		return
	}
	id := *publicID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := services.Media.Destroy(ctx, id, resourceType); err != nil {
			log.Printf("Failed to delete media %s: %v", id, err)
		}
	}()
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
