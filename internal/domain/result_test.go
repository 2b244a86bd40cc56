package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fiveQuestionQuiz() *Quiz {
	questions := make([]Question, 5)
	letters := []string{"A", "B", "C", "D", "A"}
	for i := range questions {
		questions[i] = Question{
			Text:          "q",
			Options:       []string{"w", "x", "y", "z"},
			CorrectOption: letters[i],
		}
	}
	return &Quiz{ID: "quiz1", Title: "t", CreatedBy: "u1", Questions: questions}
}

func TestScore_AllCorrect(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionIndex: 0, SelectedOption: 0},
		{QuestionIndex: 1, SelectedOption: 1},
		{QuestionIndex: 2, SelectedOption: 2},
		{QuestionIndex: 3, SelectedOption: 3},
		{QuestionIndex: 4, SelectedOption: 0},
	}
	assert.Equal(t, 100.0, Score(quiz, answers))
}

func TestScore_AllWrong(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{SelectedOption: 1},
		{SelectedOption: 0},
		{SelectedOption: 0},
		{SelectedOption: 0},
		{SelectedOption: 1},
	}
	assert.Equal(t, 0.0, Score(quiz, answers))
}

func TestScore_Partial(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{SelectedOption: 0}, // correct
		{SelectedOption: 1}, // correct
		{SelectedOption: 0}, // wrong
		{SelectedOption: 3}, // correct
		{SelectedOption: 1}, // wrong
	}
	assert.Equal(t, 60.0, Score(quiz, answers))
}

func TestScore_Unrounded(t *testing.T) {
	quiz := &Quiz{
		Questions: []Question{
			{CorrectOption: "A", Options: []string{"w", "x", "y", "z"}},
			{CorrectOption: "A", Options: []string{"w", "x", "y", "z"}},
			{CorrectOption: "A", Options: []string{"w", "x", "y", "z"}},
		},
	}
	answers := []SubmittedAnswer{
		{SelectedOption: 0},
		{SelectedOption: 1},
		{SelectedOption: 1},
	}
	assert.InDelta(t, 33.3333, Score(quiz, answers), 0.001)
}

func TestScore_PositionalNotIndexBased(t *testing.T) {
	// The QuestionIndex field is carried but ignored; the answer at slice
	// position i is matched against question i.
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{QuestionIndex: 4, SelectedOption: 0}, // matched against question 0 ("A"): correct
		{QuestionIndex: 0, SelectedOption: 0}, // matched against question 1 ("B"): wrong
	}
	assert.Equal(t, 40.0, Score(quiz, answers))
}

func TestScore_ShortAnswerSet(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{SelectedOption: 0},
		{SelectedOption: 1},
	}
	// Two correct out of five questions; unanswered questions score nothing.
	assert.Equal(t, 40.0, Score(quiz, answers))
}

func TestScore_ExtraAnswersIgnored(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{SelectedOption: 0},
		{SelectedOption: 1},
		{SelectedOption: 2},
		{SelectedOption: 3},
		{SelectedOption: 0},
		{SelectedOption: 0},
		{SelectedOption: 0},
	}
	assert.Equal(t, 100.0, Score(quiz, answers))
}

func TestScore_OutOfRangeOptionNeverMatches(t *testing.T) {
	quiz := fiveQuestionQuiz()
	answers := []SubmittedAnswer{
		{SelectedOption: -1},
		{SelectedOption: 7},
		{SelectedOption: 2}, // correct
	}
	assert.Equal(t, 20.0, Score(quiz, answers))
}

func TestScore_EmptyQuiz(t *testing.T) {
	quiz := &Quiz{}
	assert.Equal(t, 0.0, Score(quiz, []SubmittedAnswer{{SelectedOption: 0}}))
}

func TestScore_EmptyAnswers(t *testing.T) {
	quiz := fiveQuestionQuiz()
	assert.Equal(t, 0.0, Score(quiz, nil))
}
