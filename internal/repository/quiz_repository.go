package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/repository/models"
	"quizdeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// ErrQuizNotFound is returned when a quiz row does not exist or is deleted.
var ErrQuizNotFound = errors.New("quiz not found")

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

// SaveQuiz inserts a new quiz with its embedded questions document.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	model := fromDomainQuiz(quiz)
	model.CreatedAt = time.Now()
	model.UpdatedAt = model.CreatedAt

	query := `INSERT INTO quizzes (id, title, created_by, questions, time_limit, pdf_content, active, attempted_students, created_at, updated_at)
	          VALUES (:id, :title, :created_by, :questions, :time_limit, :pdf_content, :active, :attempted_students, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID retrieves a quiz by its ID.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var quiz models.Quiz
	query := `SELECT * FROM quizzes WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &quiz, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return toDomainQuiz(&quiz), nil
}

// GetQuizzesByCreator returns all quizzes owned by the given user,
// unfiltered by the active flag.
func (r *sqlxQuizRepository) GetQuizzesByCreator(ctx context.Context, creatorID string) ([]*domain.Quiz, error) {
	var quizzes []models.Quiz
	query := `SELECT * FROM quizzes WHERE created_by = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &quizzes, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes by creator: %w", err)
	}
	return toDomainQuizzes(quizzes), nil
}

// GetActiveQuizzes returns all quizzes with active = true.
func (r *sqlxQuizRepository) GetActiveQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	var quizzes []models.Quiz
	query := `SELECT * FROM quizzes WHERE active = TRUE AND deleted_at IS NULL ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &quizzes, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quizzes: %w", err)
	}
	return toDomainQuizzes(quizzes), nil
}

// DeleteQuiz soft-deletes a quiz. Existing results keep referencing it; there
// is no cascade.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrQuizNotFound
	}
	return nil
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	questions := make([]domain.Question, len(m.Questions))
	for i, q := range m.Questions {
		questions[i] = domain.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}
	attempts := make([]domain.AttemptedStudent, len(m.AttemptedStudents))
	for i, a := range m.AttemptedStudents {
		attempts[i] = domain.AttemptedStudent{
			StudentID:   a.Student,
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
		}
	}
	return &domain.Quiz{
		ID:                m.ID,
		Title:             m.Title,
		CreatedBy:         m.CreatedBy,
		Questions:         questions,
		TimeLimit:         m.TimeLimit,
		PDFContent:        m.PDFContent,
		Active:            m.Active,
		AttemptedStudents: attempts,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		DeletedAt:         util.NullTimeToTimePtr(m.DeletedAt),
	}
}

func toDomainQuizzes(ms []models.Quiz) []*domain.Quiz {
	quizzes := make([]*domain.Quiz, len(ms))
	for i := range ms {
		quizzes[i] = toDomainQuiz(&ms[i])
	}
	return quizzes
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	if q == nil {
		return nil
	}
	questions := make(models.QuestionSlice, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = models.QuestionDoc{
			Text:          question.Text,
			Options:       question.Options,
			CorrectOption: question.CorrectOption,
		}
	}
	attempts := make(models.AttemptSlice, len(q.AttemptedStudents))
	for i, a := range q.AttemptedStudents {
		attempts[i] = models.AttemptDoc{
			Student:     a.StudentID,
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
		}
	}
	return &models.Quiz{
		ID:                q.ID,
		Title:             q.Title,
		CreatedBy:         q.CreatedBy,
		Questions:         questions,
		TimeLimit:         q.TimeLimit,
		PDFContent:        q.PDFContent,
		Active:            q.Active,
		AttemptedStudents: attempts,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
		DeletedAt:         util.TimePtrToNullTime(q.DeletedAt),
	}
}
