package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Direction
		expectedErr error
	}{
		{
			name:     "empty_defaults_to_forward",
			input:    "",
			expected: DirectionForward,
		},
		{
			name:     "forward",
			input:    "forward",
			expected: DirectionForward,
		},
		{
			name:     "reverse",
			input:    "reverse",
			expected: DirectionReverse,
		},
		{
			name:        "unknown_value",
			input:       "sideways",
			expectedErr: ErrInvalidDirection,
		},
		{
			name:        "wrong_case",
			input:       "Forward",
			expectedErr: ErrInvalidDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direction, err := ParseDirection(tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, direction)
		})
	}
}

func validQuestion() QuizQuestion {
	return QuizQuestion{
		WordID:       uuid.New(),
		Prompt:       "What does 'apple' mean?",
		Options:      [OptionCount]string{"사과", "바나나", "포도", "수박"},
		CorrectIndex: 0,
		Example:      "An apple a day.",
	}
}

func TestQuizQuestionValidate(t *testing.T) {
	t.Run("valid_question", func(t *testing.T) {
		q := validQuestion()
		assert.NoError(t, q.Validate())
	})

	t.Run("blank_option", func(t *testing.T) {
		q := validQuestion()
		q.Options[2] = ""
		assert.ErrorIs(t, q.Validate(), ErrQuestionOptionCount)
	})

	t.Run("duplicate_options", func(t *testing.T) {
		q := validQuestion()
		q.Options[3] = q.Options[0]
		assert.ErrorIs(t, q.Validate(), ErrQuestionOptionsNotUnique)
	})

	t.Run("correct_index_out_of_range", func(t *testing.T) {
		q := validQuestion()
		q.CorrectIndex = OptionCount
		assert.ErrorIs(t, q.Validate(), ErrQuestionCorrectIndex)

		q.CorrectIndex = -1
		assert.ErrorIs(t, q.Validate(), ErrQuestionCorrectIndex)
	})
}

func TestQuizQuestionCorrectText(t *testing.T) {
	q := validQuestion()
	assert.Equal(t, "사과", q.CorrectText())

	q.CorrectIndex = 2
	assert.Equal(t, "포도", q.CorrectText())
}

func TestQuizPaperValidate(t *testing.T) {
	paper := &QuizPaper{
		SessionID: uuid.NewString(),
		Category:  "all",
		Direction: DirectionForward,
		Questions: []QuizQuestion{validQuestion()},
	}
	require.NoError(t, paper.Validate())

	t.Run("missing_session_id", func(t *testing.T) {
		p := *paper
		p.SessionID = ""
		assert.ErrorIs(t, p.Validate(), ErrPaperSessionIDEmpty)
	})

	t.Run("no_questions", func(t *testing.T) {
		p := *paper
		p.Questions = nil
		assert.ErrorIs(t, p.Validate(), ErrPaperNoQuestions)
	})
}

// The client view must never carry the answer key.
func TestQuizPaperView(t *testing.T) {
	paper := &QuizPaper{
		SessionID: uuid.NewString(),
		Category:  "fruit",
		Direction: DirectionReverse,
		Questions: []QuizQuestion{validQuestion(), validQuestion()},
	}

	view := paper.View()

	assert.Equal(t, paper.SessionID, view.SessionID)
	assert.Equal(t, paper.Category, view.Category)
	assert.Equal(t, paper.Direction, view.Direction)
	require.Len(t, view.Questions, 2)

	for i, item := range view.Questions {
		assert.Equal(t, paper.Questions[i].Prompt, item.Prompt)
		assert.Equal(t, paper.Questions[i].Options[:], item.Options)
	}

	// Mutating the view's options must not reach the cached paper.
	view.Questions[0].Options[0] = "tampered"
	assert.NotEqual(t, "tampered", paper.Questions[0].Options[0])
}
