package docxparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQuestionsConcatenatedText(t *testing.T) {
	text := "Question 1: What is 2 + 2?A) 5B) 4C) 3D) 2Answer: BQuestion 2: Capital of France?A) Lyon B) ParisAnswer: 1"

	got := ExtractQuestions(text)

	assert.Equal(t, []ParsedQuestion{
		{Question: "What is 2 + 2?", Options: []string{"5", "4", "3", "2"}, CorrectAnswer: 1},
		{Question: "Capital of France?", Options: []string{"Lyon", "Paris"}, CorrectAnswer: 1},
	}, got)
}

func TestExtractQuestionsSkipsBlockWithoutAnswer(t *testing.T) {
	text := "Quiz title\n" +
		"Question 1: First?A) oneB) twoAnswer: A" +
		"Question 2: No answer here?A) xB) y" +
		"Question 3: Third?A) redB) blueC) greenAnswer: c"

	got := ExtractQuestions(text)

	require.Len(t, got, 2)
	assert.Equal(t, "First?", got[0].Question)
	assert.Equal(t, 0, got[0].CorrectAnswer)
	assert.Equal(t, "Third?", got[1].Question)
	assert.Equal(t, 2, got[1].CorrectAnswer)
}

func TestExtractQuestionsParagraphSeparatedText(t *testing.T) {
	text := strings.Join([]string{
		"Unit 3 review",
		"Question 1: Choisissez la bonne réponse :",
		"A) Je suis allé",
		"B) Je suis allée",
		"C) J'ai allé",
		"Answer: A",
	}, "\n\n")

	got := ExtractQuestions(text)

	require.Len(t, got, 1)
	assert.Equal(t, "Choisissez la bonne réponse :", got[0].Question)
	assert.Equal(t, []string{"Je suis allé", "Je suis allée", "J'ai allé"}, got[0].Options)
	assert.Equal(t, 0, got[0].CorrectAnswer)
}

func TestExtractQuestionsBoundaries(t *testing.T) {
	t.Run("two options answer one", func(t *testing.T) {
		got := ExtractQuestions("Question 1: Q?A) aB) bAnswer: 1")
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].CorrectAnswer)
	})

	t.Run("letter outside A-D", func(t *testing.T) {
		assert.Empty(t, ExtractQuestions("Question 1: Q?A) aB) bC) cD) dAnswer: E"))
	})

	t.Run("numeric answer one past the end", func(t *testing.T) {
		assert.Empty(t, ExtractQuestions("Question 1: Q?A) aB) bC) cAnswer: 3"))
	})

	t.Run("letter past the options", func(t *testing.T) {
		assert.Empty(t, ExtractQuestions("Question 1: Q?A) aB) bAnswer: D"))
	})

	t.Run("numeric answer is taken literally", func(t *testing.T) {
		got := ExtractQuestions("Question 1: Q?A) aB) bC) cAnswer: 2")
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].CorrectAnswer)
	})
}

func TestExtractQuestionsSkipsMalformedBlocks(t *testing.T) {
	cases := map[string]string{
		"no options":          "Question 1: Just a prompt Answer: A",
		"answer before":       "Question 1: Prompt Answer: AA) xB) y",
		"single option":       "Question 1: Prompt A) onlyAnswer: A",
		"empty prompt":        "Question 1:   A) xB) yAnswer: A",
		"empty options":       "Question 1: Prompt A)  B) yAnswer: A",
		"huge numeric answer": "Question 1: Prompt A) xB) yAnswer: 99999999999999999999",
	}
	for name, text := range cases {
		assert.Empty(t, ExtractQuestions(text), name)
	}
}

func TestExtractQuestionsDropsEmptyOptionsBeforeGating(t *testing.T) {
	got := ExtractQuestions("Question 1: Prompt A) xB) C) zAnswer: B")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"x", "z"}, got[0].Options)
	assert.Equal(t, 1, got[0].CorrectAnswer)
}

func TestExtractQuestionsIgnoresTextAfterAnswer(t *testing.T) {
	got := ExtractQuestions("Question 1: Q?A) xB) yAnswer: B (because y) C) zAnswer: A")

	require.Len(t, got, 1)
	assert.Equal(t, []string{"x", "y"}, got[0].Options)
	assert.Equal(t, 1, got[0].CorrectAnswer)
}

func TestExtractQuestionsEmptyInput(t *testing.T) {
	got := ExtractQuestions("")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, ExtractQuestions("A document with no questions at all."))
}

func TestExtractQuestionsIsDeterministic(t *testing.T) {
	text := "Question 1: Q?A) xB) yAnswer: AQuestion 2: R?A) uB) vC) wAnswer: 2"
	assert.Equal(t, ExtractQuestions(text), ExtractQuestions(text))
}

func TestExtractQuestionsOutputSatisfiesGate(t *testing.T) {
	text := "Question 1: A?A) 1B) 2Answer: 0" +
		"Question 2: B?A) 1Answer: 0" +
		"Question 3: C?A) 1B) 2C) 3Answer: 5" +
		"Question 4: D?A) 1B) 2C) 3D) 4Answer: d"

	for _, q := range ExtractQuestions(text) {
		assert.NotEmpty(t, strings.TrimSpace(q.Question))
		assert.GreaterOrEqual(t, len(q.Options), 2)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, len(q.Options))
	}
}
