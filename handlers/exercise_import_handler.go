package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/atoile/micro_naija/docxparser"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
)

// ImportExercisesDocx extracts multiple-choice questions from the uploaded .docx
// "file". Nothing is stored; the editor reviews the questions and saves them
// through CreateExercise.
func ImportExercisesDocx(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "DOCX file is required"})
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".docx") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only .docx files are supported"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}

	questions, err := docxparser.ParseDocx(data)
	if err != nil {
		var readErr *docxparser.DocumentReadError
		if errors.As(err, &readErr) {
			log.Printf("DOCX import of %s failed: %v", file.Filename, err)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Failed to parse DOCX file"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to parse DOCX file"})
	}

	result := docxparser.ValidateQuestions(questions)
	if !result.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid questions",
			"errors": result.Errors,
		})
	}

	log.Printf("DOCX import of %s: %d questions", file.Filename, len(questions))
	websocket.Publish(websocket.ActivityEvent{
		Type:        websocket.EventImported,
		ContentType: models.ContentExercise,
		Title:       file.Filename,
	})

	return c.JSON(fiber.Map{
		"message":   fmt.Sprintf("Successfully parsed %d questions", len(questions)),
		"count":     len(questions),
		"questions": questions,
	})
}

// ValidateExerciseQuestions checks an edited question list sent as {"questions": [...]}.
func ValidateExerciseQuestions(c *fiber.Ctx) error {
	var req struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	return c.JSON(docxparser.ValidateQuestionsJSON(req.Questions))
}
