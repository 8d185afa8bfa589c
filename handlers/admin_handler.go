package handlers

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatusCounts struct {
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
	Archived  int64 `json:"archived"`
	Total     int64 `json:"total"`
}

type RecentItem struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardResponse struct {
	Counts map[string]StatusCounts `json:"counts"`
	Recent []RecentItem            `json:"recent"`
}

var dashboardTables = []struct {
	contentType string
	model       interface{}
}{
	{models.ContentNews, &models.NewsArticle{}},
	{models.ContentPodcast, &models.Podcast{}},
	{models.ContentExercise, &models.Exercise{}},
	{models.ContentGallery, &models.Gallery{}},
	{models.ContentPedagogy, &models.Pedagogy{}},
	{models.ContentResource, &models.Resource{}},
}

func countByStatus(db *gorm.DB, model interface{}) (StatusCounts, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(model).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, r := range rows {
		switch r.Status {
		case models.StatusDraft:
			counts.Draft = r.Count
		case models.StatusPublished:
			counts.Published = r.Count
		case models.StatusArchived:
			counts.Archived = r.Count
		}
		counts.Total += r.Count
	}
	return counts, nil
}

// mergeRecent keeps the n newest items, newest first.
func mergeRecent(items []RecentItem, n int) []RecentItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func GetDashboard(c *fiber.Ctx) error {
	response := DashboardResponse{Counts: make(map[string]StatusCounts, len(dashboardTables))}

	var recent []RecentItem
	for _, t := range dashboardTables {
		counts, err := countByStatus(database.DB, t.model)
		if err != nil {
			return dbError(c, err, "Dashboard")
		}
		response.Counts[t.contentType] = counts

		var rows []RecentItem
		if err := database.DB.Model(t.model).
			Select("id, title, status, created_at").
			Order("created_at desc").Limit(5).
			Scan(&rows).Error; err != nil {
			return dbError(c, err, "Dashboard")
		}
		for i := range rows {
			rows[i].ContentType = t.contentType
		}
		recent = append(recent, rows...)
	}
	response.Recent = mergeRecent(recent, 5)

	return c.JSON(response)
}

func GetAllUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * limit

	var users []models.User
	var totalUsers int64

	query := database.DB.Model(&models.User{})
	if search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Count(&totalUsers).Error; err != nil {
		return dbError(c, err, "User")
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return dbError(c, err, "User")
	}

	return c.JSON(fiber.Map{
		"data": users,
		"meta": fiber.Map{
			"total_users":  totalUsers,
			"total_pages":  int(math.Ceil(float64(totalUsers) / float64(limit))),
			"current_page": page,
		},
	})
}

// ToggleUserStatus enables or disables an account. Disabling also ends the
// user's open sessions.
func ToggleUserStatus(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil || claims["role"] != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden: Admin access required"})
	}

	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return dbError(c, err, "User")
	}
	if !req.IsActive && claims["user_id"] == userID.String() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot disable your own account"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("is_active", req.IsActive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if !req.IsActive {
			return tx.Model(&models.Session{}).
				Where("user_id = ? AND revoked_at IS NULL", userID).
				Update("revoked_at", time.Now()).Error
		}
		return nil
	})
	if err != nil {
		return dbError(c, err, "User")
	}

	return c.JSON(fiber.Map{"message": "User status updated successfully."})
}
