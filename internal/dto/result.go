package dto

import "time"

// SubmittedAnswer is one answer in a submission. SelectedOption is a
// zero-based index into the question's options.
type SubmittedAnswer struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedOption int `json:"selectedOption"`
}

// SubmitResultRequest is the request body for submitting a quiz attempt.
type SubmitResultRequest struct {
	QuizID    string            `json:"quizId"`
	Answers   []SubmittedAnswer `json:"answers"`
	TimeSpent int               `json:"timeSpent"`
}

// ResultResponse represents a stored result.
type ResultResponse struct {
	ID        string            `json:"_id"`
	Quiz      string            `json:"quiz"`
	Student   string            `json:"student"`
	Answers   []SubmittedAnswer `json:"answers"`
	Score     float64           `json:"score"`
	TimeSpent int               `json:"timeSpent"`
	CreatedAt time.Time         `json:"createdAt"`
}

// AnswerReview is the per-question correctness reconstruction for the score
// view: the stored selection compared against the quiz's correct option.
type AnswerReview struct {
	QuestionIndex  int    `json:"questionIndex"`
	SelectedOption int    `json:"selectedOption"`
	CorrectOption  string `json:"correctOption"`
	Correct        bool   `json:"correct"`
}

// ScoredResultResponse is a result joined with its quiz (title + questions
// only) for display.
type ScoredResultResponse struct {
	ID        string              `json:"_id"`
	Quiz      QuizSummaryResponse `json:"quiz"`
	Student   string              `json:"student"`
	Answers   []SubmittedAnswer   `json:"answers"`
	Review    []AnswerReview      `json:"review"`
	Score     float64             `json:"score"`
	TimeSpent int                 `json:"timeSpent"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ResultStudentResponse is the student view joined into a faculty listing.
type ResultStudentResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FacultyResultResponse is a result joined with the submitting student.
type FacultyResultResponse struct {
	ID        string                `json:"_id"`
	Quiz      string                `json:"quiz"`
	Student   ResultStudentResponse `json:"student"`
	Answers   []SubmittedAnswer     `json:"answers"`
	Score     float64               `json:"score"`
	TimeSpent int                   `json:"timeSpent"`
	CreatedAt time.Time             `json:"createdAt"`
}
