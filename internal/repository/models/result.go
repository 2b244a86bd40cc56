package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// AnswerDoc is one submitted answer embedded in a result's answers column.
type AnswerDoc struct {
	QuestionIndex  int `json:"questionIndex"`
	SelectedOption int `json:"selectedOption"`
}

// AnswerSlice handles the answers JSONB column.
type AnswerSlice []AnswerDoc

// Value implements the driver.Valuer interface
func (s AnswerSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *AnswerSlice) Scan(value interface{}) error {
	return scanJSONSlice(value, s, "AnswerSlice")
}

// Result represents a row in the results table. Quiz and student are
// referenced by id (normalized ownership); rows are insert-only.
type Result struct {
	ID        string      `db:"id"`         // ULID
	QuizID    string      `db:"quiz_id"`    // FK to quizzes
	StudentID string      `db:"student_id"` // FK to users
	Answers   AnswerSlice `db:"answers"`
	Score     float64     `db:"score"`      // 0-100, unrounded
	TimeSpent int         `db:"time_spent"` // seconds
	CreatedAt time.Time   `db:"created_at"`
}
