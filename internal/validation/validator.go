package validation

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/dto"
	"regexp"
	"strings"
)

const (
	minPasswordLength = 6
	maxTitleLength    = 200
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validator provides request validation functionality. Malformed payloads are
// rejected at the boundary with typed validation errors before reaching the
// services.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRegisterRequest validates a registration payload.
func (v *Validator) ValidateRegisterRequest(req *dto.RegisterRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, domain.NewMissingFieldError("name"))
	}

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !emailPattern.MatchString(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < minPasswordLength {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), minPasswordLength, 72))
	}

	if strings.TrimSpace(req.Role) == "" {
		errors = append(errors, domain.NewMissingFieldError("role"))
	}

	return errors
}

// ValidateLoginRequest validates a login payload.
func (v *Validator) ValidateLoginRequest(req *dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}

	return errors
}

// ValidateQuizTitle validates the title of an uploaded quiz.
func (v *Validator) ValidateQuizTitle(title string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(title) > maxTitleLength {
		errors = append(errors, domain.NewOutOfRangeError("title", len(title), 1, maxTitleLength))
	}

	return errors
}

// ValidateSubmitRequest validates a result submission. The answers array is
// deliberately not checked against the quiz's question count (missing answers
// simply score nothing), but each selected option must be a valid 0-3 index.
func (v *Validator) ValidateSubmitRequest(req *dto.SubmitResultRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quizId"))
	}

	if req.TimeSpent < 0 {
		errors = append(errors, domain.NewOutOfRangeError("timeSpent", req.TimeSpent, 0, 1<<30))
	}

	for _, answer := range req.Answers {
		if answer.SelectedOption < 0 || answer.SelectedOption > 3 {
			errors = append(errors, domain.NewOutOfRangeError("selectedOption", answer.SelectedOption, 0, 3))
			break
		}
	}

	return errors
}
