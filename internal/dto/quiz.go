package dto

import "time"

// Field names follow the wire shape the SPA consumes (`_id`, camelCase), so
// the existing front end keeps working against this API.

// QuestionResponse represents one embedded question.
type QuestionResponse struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
}

// AttemptedStudentResponse is one completed-attempt entry embedded in a quiz.
type AttemptedStudentResponse struct {
	Student     string    `json:"student"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuizResponse represents a quiz in the API response.
type QuizResponse struct {
	ID                string                     `json:"_id"`
	Title             string                     `json:"title"`
	CreatedBy         string                     `json:"createdBy"`
	Questions         []QuestionResponse         `json:"questions"`
	TimeLimit         int                        `json:"timeLimit"`
	PDFContent        string                     `json:"pdfContent,omitempty"`
	Active            bool                       `json:"active"`
	AttemptedStudents []AttemptedStudentResponse `json:"attemptedStudents"`
	CreatedAt         time.Time                  `json:"createdAt"`
}

// QuizSummaryResponse is a quiz joined into a result view: title and
// questions only.
type QuizSummaryResponse struct {
	ID        string             `json:"_id"`
	Title     string             `json:"title"`
	Questions []QuestionResponse `json:"questions"`
}

// DeleteQuizResponse acknowledges a deletion.
type DeleteQuizResponse struct {
	Message string `json:"message"`
}
