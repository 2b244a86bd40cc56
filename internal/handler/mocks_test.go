package handler

import (
	"context"

	"quizdeck/internal/domain"
	"quizdeck/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockAuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, creatorID, title string, pdfData []byte) (*dto.QuizResponse, error) {
	args := m.Called(ctx, creatorID, title, pdfData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetFacultyQuizzes(ctx context.Context, creatorID string) ([]*dto.QuizResponse, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetActiveQuizzes(ctx context.Context) ([]*dto.QuizResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuizByID(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	args := m.Called(ctx, quizID)
	return args.Error(0)
}

// --- MockResultService ---
type MockResultService struct {
	mock.Mock
}

func (m *MockResultService) Submit(ctx context.Context, studentID string, req *dto.SubmitResultRequest) (*dto.ResultResponse, error) {
	args := m.Called(ctx, studentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResultResponse), args.Error(1)
}

func (m *MockResultService) GetScoredResult(ctx context.Context, resultID string) (*dto.ScoredResultResponse, error) {
	args := m.Called(ctx, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScoredResultResponse), args.Error(1)
}

func (m *MockResultService) GetStudentResult(ctx context.Context, quizID, studentID string) (*dto.ScoredResultResponse, error) {
	args := m.Called(ctx, quizID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScoredResultResponse), args.Error(1)
}

func (m *MockResultService) GetQuizResults(ctx context.Context, quizID string) ([]*dto.FacultyResultResponse, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.FacultyResultResponse), args.Error(1)
}
