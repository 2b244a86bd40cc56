package domain

import (
	"context"
	"time"
)

// SubmittedAnswer is one entry of a submitted answer set. SelectedOption is a
// zero-based index (0-3) into the question's options. QuestionIndex is carried
// on the wire and stored, but scoring is strictly positional; see Score.
type SubmittedAnswer struct {
	QuestionIndex  int
	SelectedOption int
}

// Result is the record of one student's submitted answers to one quiz, with a
// computed percentage score. Results reference their quiz and student by
// identifier only and are never mutated after creation.
type Result struct {
	ID        string
	QuizID    string
	StudentID string
	Answers   []SubmittedAnswer
	Score     float64
	TimeSpent int // seconds
	CreatedAt time.Time
}

// NewResult creates a new Result instance.
func NewResult(id, quizID, studentID string, answers []SubmittedAnswer, score float64, timeSpent int) *Result {
	return &Result{
		ID:        id,
		QuizID:    quizID,
		StudentID: studentID,
		Answers:   answers,
		Score:     score,
		TimeSpent: timeSpent,
		CreatedAt: time.Now(),
	}
}

// Score computes the percentage score for an answer set against the quiz's
// answer key. The answer at position i is compared against questions[i]
// regardless of its QuestionIndex field; a selected option outside 0-3 or an
// answer beyond the question list never matches. The result is an unrounded
// real number (100 * correct / total).
func Score(quiz *Quiz, answers []SubmittedAnswer) float64 {
	if len(quiz.Questions) == 0 {
		return 0
	}
	correct := 0
	for i, answer := range answers {
		if i >= len(quiz.Questions) {
			break
		}
		if answer.SelectedOption < 0 || answer.SelectedOption >= len(OptionLetters) {
			continue
		}
		if OptionLetters[answer.SelectedOption] == quiz.Questions[i].CorrectOption {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(quiz.Questions))
}

// ResultRepository defines the interface for result persistence.
type ResultRepository interface {
	SaveResult(ctx context.Context, result *Result) error
	GetResultByID(ctx context.Context, id string) (*Result, error)
	// GetResultForStudent returns the student's most recent result for the quiz.
	GetResultForStudent(ctx context.Context, quizID, studentID string) (*Result, error)
	// GetResultsByQuizID returns all results for a quiz, newest first.
	GetResultsByQuizID(ctx context.Context, quizID string) ([]*Result, error)
}
