package handlers

import (
	"encoding/json"

	"github.com/atoile/micro_naija/database"
	"github.com/atoile/micro_naija/docxparser"
	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
)

type CheckAnswersRequest struct {
	Answers []int `json:"answers" validate:"required"`
}

type AnswerResult struct {
	Question      int  `json:"question"`
	Selected      int  `json:"selected"`
	IsCorrect     bool `json:"is_correct"`
	CorrectAnswer *int `json:"correct_answer,omitempty"`
}

// scoreAnswers grades answers[i] against questions[i]; unanswered questions
// count as wrong. Correct indexes are only revealed when reveal is set.
func scoreAnswers(questions []docxparser.ParsedQuestion, answers []int, reveal bool) ([]AnswerResult, float64) {
	results := make([]AnswerResult, len(questions))
	correctCount := 0
	for i, q := range questions {
		r := AnswerResult{Question: i + 1, Selected: -1}
		if i < len(answers) {
			r.Selected = answers[i]
		}
		r.IsCorrect = r.Selected == q.CorrectAnswer
		if r.IsCorrect {
			correctCount++
		}
		if reveal {
			correct := q.CorrectAnswer
			r.CorrectAnswer = &correct
		}
		results[i] = r
	}

	if len(questions) == 0 {
		return results, 0
	}
	return results, float64(correctCount) / float64(len(questions)) * 100
}

// CheckExerciseAnswers grades a learner's answers to a published multiple-choice
// exercise. Nothing is stored.
func CheckExerciseAnswers(c *fiber.Ctx) error {
	var req CheckAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var exercise models.Exercise
	if err := database.DB.Where("slug = ? AND status = ?", c.Params("slug"), models.StatusPublished).First(&exercise).Error; err != nil {
		return dbError(c, err, "Exercise")
	}
	if exercise.ExerciseType != exerciseMCQ {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only multiple-choice exercises can be checked"})
	}

	var questions []docxparser.ParsedQuestion
	if err := json.Unmarshal([]byte(exercise.Content), &questions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Corrupt exercise content"})
	}

	results, score := scoreAnswers(questions, req.Answers, exercise.ShowAnswerKey)
	return c.JSON(fiber.Map{
		"score":   score,
		"results": results,
	})
}
