package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// ErrResultNotFound is returned when a result row does not exist.
var ErrResultNotFound = errors.New("result not found")

// sqlxResultRepository implements domain.ResultRepository using sqlx.
// Result rows are insert-only; there is no update or delete path.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

// SaveResult inserts a new result with its embedded answers document.
func (r *sqlxResultRepository) SaveResult(ctx context.Context, result *domain.Result) error {
	model := fromDomainResult(result)
	model.CreatedAt = time.Now()

	query := `INSERT INTO results (id, quiz_id, student_id, answers, score, time_spent, created_at)
	          VALUES (:id, :quiz_id, :student_id, :answers, :score, :time_spent, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResultByID retrieves a result by its ID.
func (r *sqlxResultRepository) GetResultByID(ctx context.Context, id string) (*domain.Result, error) {
	var result models.Result
	query := `SELECT * FROM results WHERE id = $1`

	err := r.db.GetContext(ctx, &result, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}
	return toDomainResult(&result), nil
}

// GetResultForStudent returns the student's most recent result for a quiz.
// Submissions are not unique per (student, quiz); later attempts shadow
// earlier ones in this view only.
func (r *sqlxResultRepository) GetResultForStudent(ctx context.Context, quizID, studentID string) (*domain.Result, error) {
	var result models.Result
	query := `SELECT * FROM results WHERE quiz_id = $1 AND student_id = $2 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, &result, query, quizID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result for student: %w", err)
	}
	return toDomainResult(&result), nil
}

// GetResultsByQuizID returns all results for a quiz, newest first.
func (r *sqlxResultRepository) GetResultsByQuizID(ctx context.Context, quizID string) ([]*domain.Result, error) {
	var results []models.Result
	query := `SELECT * FROM results WHERE quiz_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &results, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results by quiz id: %w", err)
	}

	domainResults := make([]*domain.Result, len(results))
	for i := range results {
		domainResults[i] = toDomainResult(&results[i])
	}
	return domainResults, nil
}

func toDomainResult(m *models.Result) *domain.Result {
	if m == nil {
		return nil
	}
	answers := make([]domain.SubmittedAnswer, len(m.Answers))
	for i, a := range m.Answers {
		answers[i] = domain.SubmittedAnswer{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		}
	}
	return &domain.Result{
		ID:        m.ID,
		QuizID:    m.QuizID,
		StudentID: m.StudentID,
		Answers:   answers,
		Score:     m.Score,
		TimeSpent: m.TimeSpent,
		CreatedAt: m.CreatedAt,
	}
}

func fromDomainResult(r *domain.Result) *models.Result {
	if r == nil {
		return nil
	}
	answers := make(models.AnswerSlice, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = models.AnswerDoc{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		}
	}
	return &models.Result{
		ID:        r.ID,
		QuizID:    r.QuizID,
		StudentID: r.StudentID,
		Answers:   answers,
		Score:     r.Score,
		TimeSpent: r.TimeSpent,
		CreatedAt: r.CreatedAt,
	}
}
