package server

import (
	"askboard/internal/models"
	"askboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAnswer handles POST /api/questions/:id/answers (protected)
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.CreateAnswer(ctx, service.CreateAnswerInput{
		UserID:     userID,
		QuestionID: questionID,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

// GetAnswers handles GET /api/questions/:id/answers (public)
func (s *Server) GetAnswers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	answers, err := s.answerService.ListAnswers(ctx, questionID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(answers)
}
