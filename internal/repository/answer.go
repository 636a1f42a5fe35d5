package repository

import (
	"context"

	"askboard/internal/models"

	"gorm.io/gorm"
)

// AnswerRepository defines interface for answer operations
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error)
	CountByQuestion(ctx context.Context, questionID uint) (int64, error)
	DeleteByQuestion(ctx context.Context, questionID uint) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return translateErr(r.db.WithContext(ctx).Create(answer).Error, "Answer", answer.ID)
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.WithContext(ctx).Preload("User").First(&answer, id).Error; err != nil {
		return nil, translateErr(err, "Answer", id)
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Find(&answers).Error
	return answers, translateErr(err, "Answer", questionID)
}

// CountByQuestion returns the ground-truth answer count used for reconciliation.
func (r *answerRepository) CountByQuestion(ctx context.Context, questionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, translateErr(err, "Answer", questionID)
}

// DeleteByQuestion removes every answer of a question. Used only when the
// cascade delete policy is configured.
func (r *answerRepository) DeleteByQuestion(ctx context.Context, questionID uint) error {
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&models.Answer{}).Error
	return translateErr(err, "Answer", questionID)
}
