package service

import (
	"context"

	"askboard/internal/middleware"
	"askboard/internal/models"
	"askboard/internal/repository"
)

type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
}

type CreateAnswerInput struct {
	UserID     uint
	QuestionID uint
	Content    string
}

func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
	}
}

// CreateAnswer inserts the answer and bumps the question's answer counter.
// The insert and the bump are separate writes, so the counter can drift if
// the second write fails. ReconcileCounters repairs that drift.
func (s *AnswerService) CreateAnswer(ctx context.Context, in CreateAnswerInput) (*models.Answer, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	if _, err := s.questionRepo.GetByID(ctx, in.QuestionID); err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Content:    in.Content,
		UserID:     in.UserID,
		QuestionID: in.QuestionID,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	if _, err := s.questionRepo.Increment(ctx, in.QuestionID, models.CounterAnswers, 1); err != nil {
		middleware.Logger.WarnContext(ctx, "answer counter bump failed",
			"question_id", in.QuestionID, "error", err)
	}

	return s.answerRepo.GetByID(ctx, answer.ID)
}

func (s *AnswerService) ListAnswers(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.answerRepo.ListByQuestion(ctx, questionID)
}
