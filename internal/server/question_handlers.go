package server

import (
	"askboard/internal/featureflags"
	"askboard/internal/models"
	"askboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetQuestions handles GET /api/questions?term=...&page=...&limit=...
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c)
	userID, _ := s.optionalUserID(c)

	result, err := s.questionService.ListQuestions(ctx, service.ListQuestionsInput{
		Term:          c.Query("term"),
		Page:          page.Page,
		Limit:         page.Limit,
		CurrentUserID: userID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(result)
}

// GetQuestion handles GET /api/questions/:id. Returns the question with its
// answers; fetching counts as a read and bumps the read counter.
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.questionService.ViewQuestion(ctx, id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(view)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		Tags          string `json:"tags"`
		Location      string `json:"location,omitempty"`
		StartDate     string `json:"startDate,omitempty"`
		StartTime     string `json:"startTime,omitempty"`
		EndDate       string `json:"endDate,omitempty"`
		EndTime       string `json:"endTime,omitempty"`
		GroupName     string `json:"groupName,omitempty"`
		GroupDetails  string `json:"groupDetails,omitempty"`
		EventType     string `json:"eventType,omitempty"`
		EventCategory string `json:"eventCategory,omitempty"`
		Free          string `json:"free,omitempty"`
		Charged       string `json:"charged,omitempty"`
		Price         string `json:"price,omitempty"`
		ImageURL      string `json:"imageUrl,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.CreateQuestion(ctx, service.CreateQuestionInput{
		UserID:        userID,
		Title:         req.Title,
		Content:       req.Content,
		Tags:          req.Tags,
		Location:      req.Location,
		StartDate:     req.StartDate,
		StartTime:     req.StartTime,
		EndDate:       req.EndDate,
		EndTime:       req.EndTime,
		GroupName:     req.GroupName,
		GroupDetails:  req.GroupDetails,
		EventType:     req.EventType,
		EventCategory: req.EventCategory,
		Free:          req.Free,
		Charged:       req.Charged,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

// UpdateQuestion handles PUT /api/questions/:id
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         *string `json:"title"`
		Content       *string `json:"content"`
		Tags          *string `json:"tags"`
		Location      *string `json:"location"`
		StartDate     *string `json:"startDate"`
		StartTime     *string `json:"startTime"`
		EndDate       *string `json:"endDate"`
		EndTime       *string `json:"endTime"`
		GroupName     *string `json:"groupName"`
		GroupDetails  *string `json:"groupDetails"`
		EventType     *string `json:"eventType"`
		EventCategory *string `json:"eventCategory"`
		Free          *string `json:"free"`
		Charged       *string `json:"charged"`
		Price         *string `json:"price"`
		ImageURL      *string `json:"imageUrl"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.UpdateQuestion(ctx, service.UpdateQuestionInput{
		UserID:        userID,
		QuestionID:    questionID,
		Title:         req.Title,
		Content:       req.Content,
		Tags:          req.Tags,
		Location:      req.Location,
		StartDate:     req.StartDate,
		StartTime:     req.StartTime,
		EndDate:       req.EndDate,
		EndTime:       req.EndTime,
		GroupName:     req.GroupName,
		GroupDetails:  req.GroupDetails,
		EventType:     req.EventType,
		EventCategory: req.EventCategory,
		Free:          req.Free,
		Charged:       req.Charged,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(question)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.questionService.DeleteQuestion(ctx, service.DeleteQuestionInput{
		UserID:     userID,
		QuestionID: questionID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Question deleted"})
}

// ReconcileQuestion handles POST /api/questions/:id/reconcile (admin only).
// Recomputes the denormalized answer counter from the answers table.
func (s *Server) ReconcileQuestion(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if !s.featureFlags.Enabled(featureflags.FlagCounterReconcile, userID) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Route", c.Path()))
	}

	question, err := s.questionService.ReconcileCounters(ctx, questionID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(question)
}
