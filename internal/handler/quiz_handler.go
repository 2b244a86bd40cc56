package handler

import (
	"io"

	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler serves quiz creation, listing, retrieval and deletion.
type QuizHandler struct {
	quizService service.QuizService
	validator   *validation.Validator
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validator,
	}
}

// Create handles POST /api/quiz/create. The request is multipart form data
// with a "title" field and a "pdf" file.
func (h *QuizHandler) Create(c *fiber.Ctx) error {
	title := c.FormValue("title")
	if errs := h.validator.ValidateQuizTitle(title); len(errs) > 0 {
		return errs
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "PDF file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not open uploaded file")
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}

	creatorID := middleware.AuthenticatedUserID(c)
	response, err := h.quizService.CreateQuiz(c.Context(), creatorID, title, pdfData)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// FacultyQuizzes handles GET /api/quiz/faculty: quizzes created by the
// authenticated faculty user, newest first.
func (h *QuizHandler) FacultyQuizzes(c *fiber.Ctx) error {
	creatorID := middleware.AuthenticatedUserID(c)
	quizzes, err := h.quizService.GetFacultyQuizzes(c.Context(), creatorID)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// StudentQuizzes handles GET /api/quiz/student: all active quizzes.
func (h *QuizHandler) StudentQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.quizService.GetActiveQuizzes(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetByID handles GET /api/quiz/:id. Any authenticated user may fetch any
// quiz, answer key included.
func (h *QuizHandler) GetByID(c *fiber.Ctx) error {
	quiz, err := h.quizService.GetQuizByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// Delete handles DELETE /api/quiz/:id. Results recorded against the quiz are
// not removed.
func (h *QuizHandler) Delete(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.DeleteQuizResponse{Message: "Quiz deleted successfully"})
}
