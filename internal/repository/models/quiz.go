package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// QuestionDoc is one question embedded in a quiz's JSONB questions column.
// Questions live and die with their quiz (embedded ownership), unlike results
// which reference quizzes by id.
type QuestionDoc struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correctOption"`
}

// QuestionSlice handles the questions JSONB column.
type QuestionSlice []QuestionDoc

// Value implements the driver.Valuer interface
func (s QuestionSlice) Value() (driver.Value, error) {
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
func (s *QuestionSlice) Scan(value interface{}) error {
	return scanJSONSlice(value, s, "QuestionSlice")
}

// AttemptDoc is one completed-attempt entry embedded in a quiz.
type AttemptDoc struct {
	Student     string    `json:"student"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// AttemptSlice handles the attempted_students JSONB column.
type AttemptSlice []AttemptDoc

// Value implements the driver.Valuer interface
func (s AttemptSlice) Value() (driver.Value, error) {
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
func (s *AttemptSlice) Scan(value interface{}) error {
	return scanJSONSlice(value, s, "AttemptSlice")
}

// scanJSONSlice unmarshals a JSONB column into dest, treating NULL, empty and
// the literal "null" as an empty document array.
func scanJSONSlice(value interface{}, dest interface{}, typeName string) error {
	if value == nil {
		return resetSlice(dest)
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		return resetSlice(dest)
	}

	return json.Unmarshal(bytesToParse, dest)
}

func resetSlice(dest interface{}) error {
	switch d := dest.(type) {
	case *QuestionSlice:
		*d = QuestionSlice{}
	case *AttemptSlice:
		*d = AttemptSlice{}
	case *AnswerSlice:
		*d = AnswerSlice{}
	default:
		return fmt.Errorf("resetSlice: unsupported destination %T", dest)
	}
	return nil
}

// Quiz represents a row in the quizzes table. Questions and attempted
// students are embedded JSONB documents; created_by references users by id.
type Quiz struct {
	ID                string        `db:"id"` // ULID
	Title             string        `db:"title"`
	CreatedBy         string        `db:"created_by"` // FK to users
	Questions         QuestionSlice `db:"questions"`
	TimeLimit         int           `db:"time_limit"` // minutes
	PDFContent        string        `db:"pdf_content"`
	Active            bool          `db:"active"`
	AttemptedStudents AttemptSlice  `db:"attempted_students"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
	DeletedAt         sql.NullTime  `db:"deleted_at"`
}
