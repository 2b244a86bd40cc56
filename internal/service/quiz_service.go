package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizdeck/internal/cache"
	"quizdeck/internal/config"
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"
	"quizdeck/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz lifecycle operations.
type QuizService interface {
	// CreateQuiz extracts text from the uploaded PDF, generates questions
	// from it and persists the resulting quiz for the given creator.
	CreateQuiz(ctx context.Context, creatorID, title string, pdfData []byte) (*dto.QuizResponse, error)
	GetFacultyQuizzes(ctx context.Context, creatorID string) ([]*dto.QuizResponse, error)
	GetActiveQuizzes(ctx context.Context) ([]*dto.QuizResponse, error)
	GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, quizID string) error
}

type quizServiceImpl struct {
	quizRepo     domain.QuizRepository
	extractor    domain.PDFExtractor
	generator    domain.QuestionGenerator
	cache        domain.Cache
	numQuestions int
	timeLimit    int
	listCacheTTL time.Duration
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizRepo domain.QuizRepository,
	extractor domain.PDFExtractor,
	generator domain.QuestionGenerator,
	cacheClient domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizServiceImpl{
		quizRepo:     quizRepo,
		extractor:    extractor,
		generator:    generator,
		cache:        cacheClient,
		numQuestions: cfg.Quiz.NumQuestions,
		timeLimit:    cfg.Quiz.DefaultTimeLimit,
		listCacheTTL: cfg.Quiz.ListCacheTTL,
	}
}

// CreateQuiz implements QuizService.
func (s *quizServiceImpl) CreateQuiz(ctx context.Context, creatorID, title string, pdfData []byte) (*dto.QuizResponse, error) {
	l := logger.Get()

	text, err := s.extractor.ExtractText(pdfData)
	if err != nil {
		var dErr *domain.DomainError
		if errors.As(err, &dErr) {
			return nil, err
		}
		return nil, domain.NewExtractionError(err)
	}

	questions, err := s.generator.GenerateQuestions(ctx, text)
	if err != nil {
		var dErr *domain.DomainError
		if errors.As(err, &dErr) {
			return nil, err
		}
		return nil, domain.NewGenerationError(err)
	}
	if len(questions) == 0 {
		return nil, domain.NewGenerationError(fmt.Errorf("model returned no questions"))
	}
	// Extra questions are discarded; fewer than the target is accepted as-is.
	if len(questions) > s.numQuestions {
		questions = questions[:s.numQuestions]
	}

	quiz := domain.NewQuiz(util.NewULID(), title, creatorID, questions, s.timeLimit, text)
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}

	s.invalidateListCache(ctx)

	l.Info("Quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("creator_id", creatorID),
		zap.Int("num_questions", len(quiz.Questions)))

	return toQuizResponse(quiz), nil
}

// GetFacultyQuizzes implements QuizService.
func (s *quizServiceImpl) GetFacultyQuizzes(ctx context.Context, creatorID string) ([]*dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.GetQuizzesByCreator(ctx, creatorID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return toQuizResponses(quizzes), nil
}

// GetActiveQuizzes implements QuizService. The listing is cached because every
// student dashboard load hits it.
func (s *quizServiceImpl) GetActiveQuizzes(ctx context.Context) ([]*dto.QuizResponse, error) {
	l := logger.Get()
	key := cache.ActiveQuizListKey()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var responses []*dto.QuizResponse
			jsonErr := json.Unmarshal([]byte(cached), &responses)
			if jsonErr == nil {
				return responses, nil
			}
			l.Warn("Failed to unmarshal cached quiz list", zap.String("key", key), zap.Error(jsonErr))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Cache get failed for quiz list", zap.String("key", key), zap.Error(err))
		}
	}

	quizzes, err := s.quizRepo.GetActiveQuizzes(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list active quizzes", err)
	}
	responses := toQuizResponses(quizzes)

	if s.cache != nil {
		if data, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.listCacheTTL); err != nil {
				l.Warn("Cache set failed for quiz list", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return responses, nil
}

// GetQuizByID implements QuizService.
func (s *quizServiceImpl) GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	l := logger.Get()
	key := cache.QuizByIDKey(quizID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var response dto.QuizResponse
			jsonErr := json.Unmarshal([]byte(cached), &response)
			if jsonErr == nil {
				return &response, nil
			}
			l.Warn("Failed to unmarshal cached quiz", zap.String("key", key), zap.Error(jsonErr))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Cache get failed for quiz", zap.String("key", key), zap.Error(err))
		}
	}

	quiz, err := s.fetchQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	response := toQuizResponse(quiz)

	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, key, string(data), s.listCacheTTL); err != nil {
				l.Warn("Cache set failed for quiz", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return response, nil
}

// DeleteQuiz implements QuizService. Results recorded against the quiz are
// kept.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := s.quizRepo.DeleteQuiz(ctx, quizID); err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return domain.NewQuizNotFoundError(quizID)
		}
		return domain.NewInternalError("failed to delete quiz", err)
	}

	s.invalidateListCache(ctx)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.QuizByIDKey(quizID)); err != nil {
			logger.Get().Warn("Cache delete failed for quiz", zap.String("quiz_id", quizID), zap.Error(err))
		}
	}
	return nil
}

func (s *quizServiceImpl) fetchQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, domain.NewQuizNotFoundError(quizID)
		}
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

func (s *quizServiceImpl) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.ActiveQuizListKey()); err != nil {
		logger.Get().Warn("Cache invalidation failed for quiz list", zap.Error(err))
	}
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	questions := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, dto.QuestionResponse{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		})
	}
	attempted := make([]dto.AttemptedStudentResponse, 0, len(quiz.AttemptedStudents))
	for _, a := range quiz.AttemptedStudents {
		attempted = append(attempted, dto.AttemptedStudentResponse{
			Student:     a.StudentID,
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
		})
	}
	return &dto.QuizResponse{
		ID:                quiz.ID,
		Title:             quiz.Title,
		CreatedBy:         quiz.CreatedBy,
		Questions:         questions,
		TimeLimit:         quiz.TimeLimit,
		PDFContent:        quiz.PDFContent,
		Active:            quiz.Active,
		AttemptedStudents: attempted,
		CreatedAt:         quiz.CreatedAt,
	}
}

func toQuizResponses(quizzes []*domain.Quiz) []*dto.QuizResponse {
	responses := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		responses = append(responses, toQuizResponse(quiz))
	}
	return responses
}
