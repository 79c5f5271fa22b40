package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quizPayload struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

var quizKeys = []string{"question", "options", "correct_answer"}

func TestExtractJSON(t *testing.T) {
	t.Run("Direct JSON response", func(t *testing.T) {
		response := `{"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correct_answer": "4", "explanation": "Basic addition."}`

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		require.NoError(t, err)
		assert.Equal(t, "What is 2+2?", payload.Question)
		assert.Equal(t, 4, len(payload.Options))
		assert.Equal(t, "4", payload.CorrectAnswer)
	})

	t.Run("JSON inside fenced code block", func(t *testing.T) {
		response := "Here is your question:\n```json\n{\"question\": \"Q\", \"options\": [\"a\", \"b\", \"c\", \"d\"], \"correct_answer\": \"a\", \"explanation\": \"E\"}\n```\nHope this helps!"

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		require.NoError(t, err)
		assert.Equal(t, "Q", payload.Question)
		assert.Equal(t, "a", payload.CorrectAnswer)
	})

	t.Run("JSON inside fenced block without language tag", func(t *testing.T) {
		response := "```\n{\"question\": \"Q\", \"options\": [\"a\", \"b\", \"c\", \"d\"], \"correct_answer\": \"b\", \"explanation\": \"E\"}\n```"

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		require.NoError(t, err)
		assert.Equal(t, "b", payload.CorrectAnswer)
	})

	t.Run("JSON embedded in prose", func(t *testing.T) {
		response := `Sure! The question object is {"question": "Q", "options": ["a", "b", "c", "d"], "correct_answer": "c", "explanation": "E"} as requested.`

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		require.NoError(t, err)
		assert.Equal(t, "c", payload.CorrectAnswer)
	})

	t.Run("Brace extraction requires all expected keys", func(t *testing.T) {
		response := `Some prose with a fragment {"question": "Q"} that is missing keys.`

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		assert.ErrorIs(t, err, ErrParseFailure)
	})

	t.Run("Unparseable response returns ErrParseFailure", func(t *testing.T) {
		response := "I cannot generate a question right now."

		payload := &quizPayload{}
		err := extractJSON(response, quizKeys, payload)

		assert.ErrorIs(t, err, ErrParseFailure)
	})

	t.Run("Empty response returns ErrParseFailure", func(t *testing.T) {
		payload := &quizPayload{}
		err := extractJSON("", quizKeys, payload)

		assert.ErrorIs(t, err, ErrParseFailure)
	})
}

func TestParseLabeledLines(t *testing.T) {
	t.Run("Parses all labeled lines", func(t *testing.T) {
		response := "TERM: Friction loss\nDEFINITION: Pressure lost to hose friction.\nSOURCE: Hydraulics"

		fields := parseLabeledLines(response, []string{"TERM", "DEFINITION", "SOURCE"})

		assert.Equal(t, "Friction loss", fields["term"])
		assert.Equal(t, "Pressure lost to hose friction.", fields["definition"])
		assert.Equal(t, "Hydraulics", fields["source"])
	})

	t.Run("Ignores surrounding prose and unknown labels", func(t *testing.T) {
		response := "Here is your card:\n\nTERM: Throttle\nNOTE: extra\nDEFINITION: Controls engine speed."

		fields := parseLabeledLines(response, []string{"TERM", "DEFINITION"})

		assert.Equal(t, 2, len(fields))
		assert.Equal(t, "Throttle", fields["term"])
	})

	t.Run("Missing labels yield no entries", func(t *testing.T) {
		fields := parseLabeledLines("No labels here at all.", []string{"TERM", "DEFINITION"})

		assert.Empty(t, fields)
	})
}
