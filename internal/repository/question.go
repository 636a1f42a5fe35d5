// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"askboard/internal/middleware"
	"askboard/internal/models"
	"askboard/internal/observability"

	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question data operations.
//
// Increment is the atomic counter primitive: the underlying store applies the
// delta in a single statement, so concurrent bumps never lose updates the way
// a read-modify-write cycle would.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	List(ctx context.Context, term string, limit, offset int) ([]*models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	Increment(ctx context.Context, id uint, counter string, delta int) (*models.Question, error)
	SetCounter(ctx context.Context, id uint, counter string, value int) error
}

// questionRepository implements QuestionRepository
type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return translateErr(r.db.WithContext(ctx).Create(question).Error, "Question", question.ID)
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&question, id).Error
	if err != nil {
		return nil, translateErr(err, "Question", id)
	}
	return &question, nil
}

// termFilter restricts the query to questions whose title or content contains
// term, case-insensitively. An empty term matches everything.
func termFilter(db *gorm.DB, term string) *gorm.DB {
	if term == "" {
		return db
	}
	like := "%" + term + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", like, like)
}

func (r *questionRepository) List(ctx context.Context, term string, limit, offset int) ([]*models.Question, int64, error) {
	var total int64
	if err := termFilter(r.db.WithContext(ctx).Model(&models.Question{}), term).
		Count(&total).Error; err != nil {
		return nil, 0, translateErr(err, "Question", nil)
	}

	var questions []*models.Question
	err := termFilter(r.db.WithContext(ctx), term).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, translateErr(err, "Question", nil)
	}
	return questions, total, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return translateErr(r.db.WithContext(ctx).Save(question).Error, "Question", question.ID)
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	// Idempotent: deleting an absent question is not an error.
	return translateErr(r.db.WithContext(ctx).Delete(&models.Question{}, id).Error, "Question", id)
}

func (r *questionRepository) Increment(ctx context.Context, id uint, counter string, delta int) (*models.Question, error) {
	if counter != models.CounterReads && counter != models.CounterAnswers {
		return nil, models.NewValidationError("Unknown counter field: " + counter)
	}

	ctx, span := observability.TraceRepositoryMethod(ctx, "Increment", "questions")
	defer span.End()

	// Single-statement field add; UpdateColumn leaves updated_at untouched so
	// view counting does not masquerade as an edit.
	res := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn(counter, gorm.Expr(counter+" + ?", delta))
	if res.Error != nil {
		return nil, translateErr(res.Error, "Question", id)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Question", id)
	}

	middleware.CounterIncrements.WithLabelValues(counter).Inc()

	return r.GetByID(ctx, id)
}

func (r *questionRepository) SetCounter(ctx context.Context, id uint, counter string, value int) error {
	if counter != models.CounterReads && counter != models.CounterAnswers {
		return models.NewValidationError("Unknown counter field: " + counter)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn(counter, value)
	if res.Error != nil {
		return translateErr(res.Error, "Question", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Question", id)
	}
	return nil
}
