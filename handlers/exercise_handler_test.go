package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/atoile/micro_naija/database/dbtest"
	"github.com/atoile/micro_naija/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const twoQuestions = `[
	{"question":"What is 2 + 2?","options":["5","4","3"],"correctAnswer":1},
	{"question":"Capital of France?","options":["Paris","Lyon"],"correctAnswer":0}
]`

func exerciseApp(editor models.User) *fiber.App {
	app := fiber.New()
	admin := app.Group("/admin/exercises", signedInAs(editor))
	admin.Get("", ListExercisesAdmin)
	admin.Post("", CreateExercise)
	admin.Put("/:id", UpdateExercise)
	admin.Delete("/:id", DeleteExercise)
	admin.Post("/:id/publish", PublishExercise)
	app.Get("/exercises", ListPublishedExercises)
	app.Get("/exercises/:slug", GetPublishedExercise)
	app.Post("/exercises/:slug/check", CheckExerciseAnswers)
	app.Get("/podcasts/:slug/exercises", ListPodcastExercises)
	return app
}

func createExercise(t *testing.T, db *gorm.DB, e models.Exercise) models.Exercise {
	t.Helper()
	if e.ExerciseType == "" {
		e.ExerciseType = exerciseMCQ
	}
	if e.Status == "" {
		e.Status = models.StatusDraft
	}
	if e.Slug == "" {
		e.Slug = uuid.NewString()
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func TestCreateExerciseValidatesQuestions(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))

	resp, err := app.Test(jsonRequest("POST", "/admin/exercises", `{
		"title":"Listening 1",
		"questions":[{"question":"","options":["a"],"correctAnswer":3}]
	}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid questions", body["error"])
	assert.Equal(t, []interface{}{
		"Question 1: Missing question text",
		"Question 1: Must have at least 2 options",
		"Question 1: Invalid correct answer index (3)",
	}, body["errors"])

	resp, err = app.Test(jsonRequest("POST", "/admin/exercises", `{"title":"No questions"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []interface{}{"No questions found"}, decodeBody(t, resp)["errors"])

	var count int64
	require.NoError(t, db.Model(&models.Exercise{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateExerciseNormalizesQuestions(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))

	resp, err := app.Test(jsonRequest("POST", "/admin/exercises", `{
		"title":"Listening 1",
		"difficulty":"advanced",
		"questions":[{"question":"Q?","options":["a","b"],"correctAnswer":1.0,"extra":true}]
	}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "listening-1", body["slug"])
	assert.Equal(t, "advanced", body["difficulty"])
	assert.Equal(t, models.StatusDraft, body["status"])

	var stored models.Exercise
	require.NoError(t, db.First(&stored, "id = ?", body["id"]).Error)
	assert.JSONEq(t, `[{"question":"Q?","options":["a","b"],"correctAnswer":1}]`, stored.Content)
}

func TestCreateExerciseRequiresKnownPodcast(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))

	resp, err := app.Test(jsonRequest("POST", "/admin/exercises",
		`{"title":"Linked","podcast_id":"`+uuid.NewString()+`","questions":`+twoQuestions+`}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Podcast not found", decodeBody(t, resp)["error"])
}

func TestPublishExerciseRevalidates(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))

	broken := createExercise(t, db, models.Exercise{Title: "Broken", Content: `[{"question":"Q","options":["a","b"],"correctAnswer":2}]`})
	resp, err := app.Test(httptest.NewRequest("POST", "/admin/exercises/"+broken.ID.String()+"/publish", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []interface{}{"Question 1: Invalid correct answer index (2)"}, decodeBody(t, resp)["errors"])

	require.NoError(t, db.First(&broken, "id = ?", broken.ID).Error)
	assert.Equal(t, models.StatusDraft, broken.Status)

	good := createExercise(t, db, models.Exercise{Title: "Good", Content: twoQuestions})
	resp, err = app.Test(httptest.NewRequest("POST", "/admin/exercises/"+good.ID.String()+"/publish", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&good, "id = ?", good.ID).Error)
	assert.Equal(t, models.StatusPublished, good.Status)
	assert.NotNil(t, good.PublishedAt)

	// Free-form exercise types carry no question list to check.
	gaps := createExercise(t, db, models.Exercise{Title: "Gaps", ExerciseType: "gap_filling", Content: `{"text":"___"}`})
	resp, err = app.Test(httptest.NewRequest("POST", "/admin/exercises/"+gaps.ID.String()+"/publish", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateExerciseKeepsStoredQuestionsValid(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))
	exercise := createExercise(t, db, models.Exercise{Title: "Quiz", Slug: "quiz", Content: twoQuestions})

	resp, err := app.Test(jsonRequest("PUT", "/admin/exercises/"+exercise.ID.String(),
		`{"title":"Quiz","questions":[{"question":"Q","options":["only one"],"correctAnswer":0}]}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	require.NoError(t, db.First(&exercise, "id = ?", exercise.ID).Error)
	assert.JSONEq(t, twoQuestions, exercise.Content)

	resp, err = app.Test(jsonRequest("PUT", "/admin/exercises/"+exercise.ID.String(),
		`{"title":"Quiz Two","questions":`+twoQuestions+`}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "quiz-two", decodeBody(t, resp)["slug"])
}

func TestPublishedExerciseListings(t *testing.T) {
	db := dbtest.Use(t)
	app := exerciseApp(createUser(t, db, "editor@example.org", "s3cret-pass", "editor"))

	podcast := models.Podcast{Title: "Episode 1", Slug: "episode-1", Status: models.StatusPublished}
	require.NoError(t, db.Create(&podcast).Error)
	createExercise(t, db, models.Exercise{Title: "Linked", Slug: "linked", Content: twoQuestions, PodcastID: &podcast.ID, Status: models.StatusPublished})
	createExercise(t, db, models.Exercise{Title: "Loose", Slug: "loose", Content: twoQuestions, Status: models.StatusPublished})
	createExercise(t, db, models.Exercise{Title: "Draft", Slug: "draft", Content: twoQuestions, PodcastID: &podcast.ID})

	resp, err := app.Test(httptest.NewRequest("GET", "/exercises", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/exercises?podcast_id="+podcast.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "linked", list[0]["slug"])

	resp, err = app.Test(httptest.NewRequest("GET", "/exercises?podcast_id=episode-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin/exercises?podcast_id=episode-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin/exercises?podcast_id="+podcast.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/podcasts/episode-1/exercises", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/exercises/draft", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
