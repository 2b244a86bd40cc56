package domain

import (
	"context"
	"time"
)

// OptionLetters maps a zero-based option index to its answer letter.
var OptionLetters = [4]string{"A", "B", "C", "D"}

// Question is a prompt with exactly four answer options and one designated
// correct option identified by a letter A-D. Questions are embedded in their
// quiz and have no independent lifecycle.
type Question struct {
	Text          string
	Options       []string
	CorrectOption string
}

// Validate validates the question.
func (q *Question) Validate() error {
	if q.Text == "" {
		return ValidationErrors{NewMissingFieldError("text")}
	}
	if len(q.Options) != 4 {
		return ValidationErrors{NewOutOfRangeError("options", len(q.Options), 4, 4)}
	}
	if !validOptionLetter(q.CorrectOption) {
		return ValidationErrors{NewInvalidFormatError("correctOption", q.CorrectOption)}
	}
	return nil
}

func validOptionLetter(letter string) bool {
	for _, l := range OptionLetters {
		if l == letter {
			return true
		}
	}
	return false
}

// AttemptedStudent records a completed attempt embedded in a quiz. The array
// is declared but nothing writes to it; it is carried for wire compatibility
// with clients that expect the field.
type AttemptedStudent struct {
	StudentID   string
	Score       float64
	CompletedAt time.Time
}

// Quiz is a titled collection of multiple-choice questions generated from one
// source PDF, owned by a faculty user.
type Quiz struct {
	ID                string
	Title             string
	CreatedBy         string
	Questions         []Question
	TimeLimit         int // minutes
	PDFContent        string
	Active            bool
	AttemptedStudents []AttemptedStudent
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

// NewQuiz creates a new Quiz instance with the generated questions and raw
// extracted text attached.
func NewQuiz(id, title, createdBy string, questions []Question, timeLimit int, pdfContent string) *Quiz {
	now := time.Now()
	return &Quiz{
		ID:                id,
		Title:             title,
		CreatedBy:         createdBy,
		Questions:         questions,
		TimeLimit:         timeLimit,
		PDFContent:        pdfContent,
		Active:            true,
		AttemptedStudents: []AttemptedStudent{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Validate validates the quiz.
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if q.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if q.CreatedBy == "" {
		errs = append(errs, NewMissingFieldError("createdBy"))
	}
	if len(q.Questions) == 0 {
		errs = append(errs, NewMissingFieldError("questions"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QuizRepository defines the interface for quiz persistence.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	GetQuizzesByCreator(ctx context.Context, creatorID string) ([]*Quiz, error)
	GetActiveQuizzes(ctx context.Context) ([]*Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

// PDFExtractor converts a binary PDF into a plain-text string.
type PDFExtractor interface {
	ExtractText(data []byte) (string, error)
}

// QuestionGenerator produces multiple-choice questions from extracted text.
// The generator is instructed to produce a fixed number of questions, each
// with exactly 4 options and one correct letter.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, text string) ([]Question, error)
}
