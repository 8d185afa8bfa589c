package handlers

import (
	"encoding/json"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/docxparser"
	"github.com/atoile/micro_naija/models"
	"github.com/atoile/micro_naija/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const exerciseMCQ = "mcq"

type ExerciseRequest struct {
	Title         string          `json:"title" validate:"required,max=255"`
	Description   *string         `json:"description"`
	PodcastID     *string         `json:"podcast_id" validate:"omitempty,uuid"`
	ExerciseType  string          `json:"exercise_type" validate:"omitempty,oneof=mcq gap_filling matching sequencing true_false"`
	Difficulty    string          `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Questions     json.RawMessage `json:"questions"`
	AnswerKey     *string         `json:"answer_key"`
	ShowAnswerKey *bool           `json:"show_answer_key"`
	Status        string          `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// ExerciseView is the admin representation with questions and answer key.
type ExerciseView struct {
	models.Exercise
	Questions json.RawMessage `json:"questions"`
	AnswerKey *string         `json:"answer_key,omitempty"`
}

// PublicQuestion is a multiple-choice question without its answer.
type PublicQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func adminExerciseView(e models.Exercise) ExerciseView {
	return ExerciseView{Exercise: e, Questions: json.RawMessage(e.Content), AnswerKey: e.AnswerKey}
}

// publicExerciseView hides correct answers and the answer key unless the
// exercise opts in to showing them.
func publicExerciseView(e models.Exercise) (ExerciseView, error) {
	view := ExerciseView{Exercise: e, Questions: json.RawMessage(e.Content)}
	if e.ShowAnswerKey {
		view.AnswerKey = e.AnswerKey
		return view, nil
	}
	if e.ExerciseType != exerciseMCQ {
		return view, nil
	}

	var questions []docxparser.ParsedQuestion
	if err := json.Unmarshal([]byte(e.Content), &questions); err != nil {
		return view, err
	}
	stripped := make([]PublicQuestion, len(questions))
	for i, q := range questions {
		stripped[i] = PublicQuestion{Question: q.Question, Options: q.Options}
	}
	raw, err := json.Marshal(stripped)
	if err != nil {
		return view, err
	}
	view.Questions = raw
	return view, nil
}

// exerciseContent checks and normalizes the questions payload for exerciseType.
// Multiple-choice lists must pass question validation; other types only need
// well-formed JSON.
func exerciseContent(exerciseType string, raw json.RawMessage) (string, []string) {
	if len(raw) == 0 || string(raw) == "null" {
		if exerciseType == exerciseMCQ {
			return "", docxparser.ValidateQuestionsJSON(nil).Errors
		}
		return "[]", nil
	}

	if exerciseType != exerciseMCQ {
		if !json.Valid(raw) {
			return "", []string{"Questions must be valid JSON"}
		}
		return string(raw), nil
	}

	if result := docxparser.ValidateQuestionsJSON(raw); !result.Valid {
		return "", result.Errors
	}
	var questions []docxparser.ParsedQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return "", []string{err.Error()}
	}
	normalized, err := json.Marshal(questions)
	if err != nil {
		return "", []string{err.Error()}
	}
	return string(normalized), nil
}

func (r ExerciseRequest) apply(e *models.Exercise) []string {
	exerciseType := e.ExerciseType
	if r.ExerciseType != "" {
		exerciseType = r.ExerciseType
	}
	content, errs := exerciseContent(exerciseType, r.Questions)
	if len(errs) > 0 {
		return errs
	}

	e.Title = r.Title
	e.Description = r.Description
	e.ExerciseType = exerciseType
	e.Content = content
	e.AnswerKey = r.AnswerKey
	e.PodcastID = nil
	if r.PodcastID != nil && *r.PodcastID != "" {
		id := uuid.MustParse(*r.PodcastID)
		e.PodcastID = &id
	}
	if r.Difficulty != "" {
		e.Difficulty = r.Difficulty
	}
	if r.ShowAnswerKey != nil {
		e.ShowAnswerKey = *r.ShowAnswerKey
	}
	applyStatus(r.Status, &e.Status, &e.PublishedAt)
	return nil
}

func ListExercisesAdmin(c *fiber.Ctx) error {
	var exercises []models.Exercise
	q := adminListQuery(c, database.DB)
	if podcastID := c.Query("podcast_id"); podcastID != "" {
		id, err := uuid.Parse(podcastID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid podcast_id"})
		}
		q = q.Where("podcast_id = ?", id)
	}
	if err := q.Find(&exercises).Error; err != nil {
		return dbError(c, err, "Exercise")
	}

	views := make([]ExerciseView, len(exercises))
	for i, e := range exercises {
		views[i] = adminExerciseView(e)
	}
	return c.JSON(views)
}

func CreateExercise(c *fiber.Ctx) error {
	var req ExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exercise := models.Exercise{
		ExerciseType:  exerciseMCQ,
		Difficulty:    "beginner",
		ShowAnswerKey: true,
		Status:        models.StatusDraft,
	}
	if errs := req.apply(&exercise); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid questions", "errors": errs})
	}
	if err := checkPodcastExists(exercise.PodcastID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Podcast not found"})
	}

	slug, err := uniqueSlug("exercises", req.Title, "")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
	}
	exercise.Slug = slug

	if err := database.DB.Create(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	recordActivity(c, websocket.EventCreated, models.ContentExercise, exercise.ID, exercise.Title)
	return c.Status(fiber.StatusCreated).JSON(adminExerciseView(exercise))
}

func UpdateExercise(c *fiber.Ctx) error {
	var exercise models.Exercise
	if err := findByID(c, &exercise); err != nil {
		return dbError(c, err, "Exercise")
	}

	var req ExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	oldTitle := exercise.Title
	if errs := req.apply(&exercise); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid questions", "errors": errs})
	}
	if err := checkPodcastExists(exercise.PodcastID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Podcast not found"})
	}
	if exercise.Title != oldTitle {
		slug, err := uniqueSlug("exercises", exercise.Title, exercise.ID.String())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title must contain letters or digits"})
		}
		exercise.Slug = slug
	}

	if err := database.DB.Save(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	recordActivity(c, websocket.EventUpdated, models.ContentExercise, exercise.ID, exercise.Title)
	return c.JSON(adminExerciseView(exercise))
}

func DeleteExercise(c *fiber.Ctx) error {
	var exercise models.Exercise
	if err := findByID(c, &exercise); err != nil {
		return dbError(c, err, "Exercise")
	}
	if err := database.DB.Delete(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	recordActivity(c, websocket.EventDeleted, models.ContentExercise, exercise.ID, exercise.Title)
	return c.SendStatus(fiber.StatusNoContent)
}

func PublishExercise(c *fiber.Ctx) error {
	var exercise models.Exercise
	if err := findByID(c, &exercise); err != nil {
		return dbError(c, err, "Exercise")
	}
	if exercise.ExerciseType == exerciseMCQ {
		if result := docxparser.ValidateQuestionsJSON([]byte(exercise.Content)); !result.Valid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid questions", "errors": result.Errors})
		}
	}
	applyStatus(models.StatusPublished, &exercise.Status, &exercise.PublishedAt)
	if err := database.DB.Save(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	recordActivity(c, websocket.EventPublished, models.ContentExercise, exercise.ID, exercise.Title)
	return c.JSON(adminExerciseView(exercise))
}

func checkPodcastExists(id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	return database.DB.Select("id").First(&models.Podcast{}, "id = ?", *id).Error
}
