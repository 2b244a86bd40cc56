package service

import (
	"context"
	"errors"
	"sync"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"quizdeck/internal/logger"
	"quizdeck/internal/repository"
	"quizdeck/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResultService defines the interface for attempt submission and retrieval.
type ResultService interface {
	// Submit scores an answer set against the quiz's answer key and stores
	// the resulting record.
	Submit(ctx context.Context, studentID string, req *dto.SubmitResultRequest) (*dto.ResultResponse, error)
	// GetScoredResult returns a stored result joined with its quiz and a
	// per-question correctness review.
	GetScoredResult(ctx context.Context, resultID string) (*dto.ScoredResultResponse, error)
	// GetStudentResult returns the student's most recent result for a quiz.
	GetStudentResult(ctx context.Context, quizID, studentID string) (*dto.ScoredResultResponse, error)
	// GetQuizResults returns all results for a quiz with the submitting
	// students joined in, newest first.
	GetQuizResults(ctx context.Context, quizID string) ([]*dto.FacultyResultResponse, error)
}

type resultServiceImpl struct {
	resultRepo domain.ResultRepository
	quizRepo   domain.QuizRepository
	userRepo   domain.UserRepository
}

// NewResultService creates a new ResultService.
func NewResultService(
	resultRepo domain.ResultRepository,
	quizRepo domain.QuizRepository,
	userRepo domain.UserRepository,
) ResultService {
	return &resultServiceImpl{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
		userRepo:   userRepo,
	}
}

// Submit implements ResultService.
func (s *resultServiceImpl) Submit(ctx context.Context, studentID string, req *dto.SubmitResultRequest) (*dto.ResultResponse, error) {
	quiz, err := s.fetchQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	answers := toDomainAnswers(req.Answers)
	score := domain.Score(quiz, answers)

	result := domain.NewResult(util.NewULID(), quiz.ID, studentID, answers, score, req.TimeSpent)
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("failed to save result", err)
	}

	logger.Get().Info("Result submitted",
		zap.String("result_id", result.ID),
		zap.String("quiz_id", quiz.ID),
		zap.String("student_id", studentID),
		zap.Float64("score", score))

	return toResultResponse(result), nil
}

// GetScoredResult implements ResultService.
func (s *resultServiceImpl) GetScoredResult(ctx context.Context, resultID string) (*dto.ScoredResultResponse, error) {
	result, err := s.resultRepo.GetResultByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			return nil, domain.NewResultNotFoundError(resultID)
		}
		return nil, domain.NewInternalError("failed to load result", err)
	}
	if result == nil {
		return nil, domain.NewResultNotFoundError(resultID)
	}

	quiz, err := s.fetchQuiz(ctx, result.QuizID)
	if err != nil {
		return nil, err
	}
	return toScoredResultResponse(result, quiz), nil
}

// GetStudentResult implements ResultService.
func (s *resultServiceImpl) GetStudentResult(ctx context.Context, quizID, studentID string) (*dto.ScoredResultResponse, error) {
	result, err := s.resultRepo.GetResultForStudent(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			return nil, domain.NewResultNotFoundError(quizID)
		}
		return nil, domain.NewInternalError("failed to load result", err)
	}
	if result == nil {
		return nil, domain.NewResultNotFoundError(quizID)
	}

	quiz, err := s.fetchQuiz(ctx, result.QuizID)
	if err != nil {
		return nil, err
	}
	return toScoredResultResponse(result, quiz), nil
}

// GetQuizResults implements ResultService. The distinct submitting students
// are loaded concurrently, one lookup per student.
func (s *resultServiceImpl) GetQuizResults(ctx context.Context, quizID string) ([]*dto.FacultyResultResponse, error) {
	results, err := s.resultRepo.GetResultsByQuizID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list results", err)
	}

	studentIDs := make([]string, 0, len(results))
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		if !seen[r.StudentID] {
			seen[r.StudentID] = true
			studentIDs = append(studentIDs, r.StudentID)
		}
	}

	students := make(map[string]*domain.User, len(studentIDs))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range studentIDs {
		id := id
		g.Go(func() error {
			user, err := s.userRepo.GetUserByID(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			students[id] = user
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewInternalError("failed to load result students", err)
	}

	responses := make([]*dto.FacultyResultResponse, 0, len(results))
	for _, r := range results {
		student := dto.ResultStudentResponse{ID: r.StudentID}
		// A deleted student leaves a bare id in the listing.
		if u := students[r.StudentID]; u != nil {
			student.Name = u.Name
			student.Email = u.Email
		}
		responses = append(responses, &dto.FacultyResultResponse{
			ID:        r.ID,
			Quiz:      r.QuizID,
			Student:   student,
			Answers:   toDTOAnswers(r.Answers),
			Score:     r.Score,
			TimeSpent: r.TimeSpent,
			CreatedAt: r.CreatedAt,
		})
	}
	return responses, nil
}

func (s *resultServiceImpl) fetchQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
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

func toDomainAnswers(answers []dto.SubmittedAnswer) []domain.SubmittedAnswer {
	converted := make([]domain.SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		converted = append(converted, domain.SubmittedAnswer{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		})
	}
	return converted
}

func toDTOAnswers(answers []domain.SubmittedAnswer) []dto.SubmittedAnswer {
	converted := make([]dto.SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		converted = append(converted, dto.SubmittedAnswer{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		})
	}
	return converted
}

func toResultResponse(result *domain.Result) *dto.ResultResponse {
	return &dto.ResultResponse{
		ID:        result.ID,
		Quiz:      result.QuizID,
		Student:   result.StudentID,
		Answers:   toDTOAnswers(result.Answers),
		Score:     result.Score,
		TimeSpent: result.TimeSpent,
		CreatedAt: result.CreatedAt,
	}
}

func toScoredResultResponse(result *domain.Result, quiz *domain.Quiz) *dto.ScoredResultResponse {
	questions := make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, dto.QuestionResponse{
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		})
	}

	review := make([]dto.AnswerReview, 0, len(result.Answers))
	for i, a := range result.Answers {
		entry := dto.AnswerReview{
			QuestionIndex:  a.QuestionIndex,
			SelectedOption: a.SelectedOption,
		}
		if i < len(quiz.Questions) {
			entry.CorrectOption = quiz.Questions[i].CorrectOption
			if a.SelectedOption >= 0 && a.SelectedOption < len(domain.OptionLetters) {
				entry.Correct = domain.OptionLetters[a.SelectedOption] == entry.CorrectOption
			}
		}
		review = append(review, entry)
	}

	return &dto.ScoredResultResponse{
		ID: result.ID,
		Quiz: dto.QuizSummaryResponse{
			ID:        quiz.ID,
			Title:     quiz.Title,
			Questions: questions,
		},
		Student:   result.StudentID,
		Answers:   toDTOAnswers(result.Answers),
		Review:    review,
		Score:     result.Score,
		TimeSpent: result.TimeSpent,
		CreatedAt: result.CreatedAt,
	}
}
