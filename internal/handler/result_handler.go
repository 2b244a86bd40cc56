package handler

import (
	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
	"quizdeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ResultHandler serves attempt submission and result retrieval.
type ResultHandler struct {
	resultService service.ResultService
	validator     *validation.Validator
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService service.ResultService, validator *validation.Validator) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		validator:     validator,
	}
}

// Submit handles POST /api/results/submit.
func (h *ResultHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateSubmitRequest(&req); len(errs) > 0 {
		return errs
	}

	studentID := middleware.AuthenticatedUserID(c)
	response, err := h.resultService.Submit(c.Context(), studentID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// Score handles GET /api/results/score/:id: a stored result joined with its
// quiz and a per-question review.
func (h *ResultHandler) Score(c *fiber.Ctx) error {
	result, err := h.resultService.GetScoredResult(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// StudentResult handles GET /api/results/student/:quizId: the authenticated
// student's most recent result for that quiz.
func (h *ResultHandler) StudentResult(c *fiber.Ctx) error {
	studentID := middleware.AuthenticatedUserID(c)
	result, err := h.resultService.GetStudentResult(c.Context(), c.Params("quizId"), studentID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// QuizResults handles GET /api/results/faculty/quiz/:quizId: every result for a quiz
// with the submitting students joined in.
func (h *ResultHandler) QuizResults(c *fiber.Ctx) error {
	results, err := h.resultService.GetQuizResults(c.Context(), c.Params("quizId"))
	if err != nil {
		return err
	}
	return c.JSON(results)
}
