package service

import (
	"context"
	"strings"

	"askboard/internal/cache"
	"askboard/internal/config"
	"askboard/internal/models"
	"askboard/internal/observability"
	"askboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	deletePolicy string
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
}

type CreateQuestionInput struct {
	UserID  uint
	Title   string
	Content string
	// Tags is the raw space-separated tag string as submitted by the client.
	Tags string

	Location      string
	StartDate     string
	StartTime     string
	EndDate       string
	EndTime       string
	GroupName     string
	GroupDetails  string
	EventType     string
	EventCategory string
	Free          string
	Charged       string
	Price         string
	ImageURL      string
}

type ListQuestionsInput struct {
	Term          string
	Page          int
	Limit         int
	CurrentUserID uint
}

// UpdateQuestionInput uses pointer fields so callers can distinguish
// "leave unchanged" (nil) from "set to empty" (pointer to "").
type UpdateQuestionInput struct {
	UserID     uint
	QuestionID uint
	Title      *string
	Content    *string
	Tags       *string

	Location      *string
	StartDate     *string
	StartTime     *string
	EndDate       *string
	EndTime       *string
	GroupName     *string
	GroupDetails  *string
	EventType     *string
	EventCategory *string
	Free          *string
	Charged       *string
	Price         *string
	ImageURL      *string
}

type DeleteQuestionInput struct {
	UserID     uint
	QuestionID uint
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	deletePolicy string,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *QuestionService {
	if deletePolicy == "" {
		deletePolicy = config.DeletePolicyOrphan
	}
	return &QuestionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		deletePolicy: deletePolicy,
		isAdmin:      isAdmin,
	}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000 // 50K characters
	defaultLimit  = 10
	maxLimit      = 100
)

// parseTags splits a raw tag string on whitespace and drops empty entries.
func parseTags(raw string) []string {
	return strings.Fields(raw)
}

// applyIfSet copies src over dst when the caller provided a value.
func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if strings.TrimSpace(in.Tags) == "" {
		return nil, models.NewValidationError("Tags are required")
	}

	question := &models.Question{
		Title:         in.Title,
		Content:       in.Content,
		Tags:          parseTags(in.Tags),
		UserID:        in.UserID,
		Location:      in.Location,
		StartDate:     in.StartDate,
		StartTime:     in.StartTime,
		EndDate:       in.EndDate,
		EndTime:       in.EndTime,
		GroupName:     in.GroupName,
		GroupDetails:  in.GroupDetails,
		EventType:     in.EventType,
		EventCategory: in.EventCategory,
		Free:          in.Free,
		Charged:       in.Charged,
		Price:         in.Price,
		ImageURL:      in.ImageURL,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	cache.InvalidateQuestionsList(ctx)

	return s.questionRepo.GetByID(ctx, question.ID)
}

func (s *QuestionService) ListQuestions(ctx context.Context, in ListQuestionsInput) (*models.Page[*models.Question], error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}
	offset := (in.Page - 1) * in.Limit

	// The unfiltered first page for anonymous readers is by far the hottest
	// query, so it is the only one served through the cache.
	if in.Term == "" && in.Page == 1 && in.Limit == defaultLimit && in.CurrentUserID == 0 {
		var page *models.Page[*models.Question]
		err := cache.Aside(ctx, cache.QuestionsListKey, &page, cache.ListTTL, func() error {
			var fetchErr error
			page, fetchErr = s.fetchPage(ctx, in.Term, in.Page, in.Limit, offset)
			return fetchErr
		})
		if err != nil {
			return nil, err
		}
		return page, nil
	}

	return s.fetchPage(ctx, in.Term, in.Page, in.Limit, offset)
}

func (s *QuestionService) fetchPage(ctx context.Context, term string, page, limit, offset int) (*models.Page[*models.Question], error) {
	questions, total, err := s.questionRepo.List(ctx, term, limit, offset)
	if err != nil {
		return nil, err
	}
	p := models.NewPage(questions, total, page, limit)
	return &p, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// QuestionView is the detail payload: the question (with the view already
// counted) and all of its answers.
type QuestionView struct {
	Question *models.Question `json:"question"`
	Answers  []*models.Answer `json:"answers"`
}

// ViewQuestion returns a question with its answers and records the read. The
// counter bump is a single atomic UPDATE, so concurrent views never lose
// increments.
func (s *QuestionService) ViewQuestion(ctx context.Context, id uint) (*QuestionView, error) {
	question, err := s.questionRepo.Increment(ctx, id, models.CounterReads, 1)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.ListByQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	return &QuestionView{Question: question, Answers: answers}, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, in UpdateQuestionInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	if question.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own questions")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		question.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		question.Content = *in.Content
	}
	if in.Tags != nil {
		if strings.TrimSpace(*in.Tags) == "" {
			return nil, models.NewValidationError("Tags cannot be empty")
		}
		question.Tags = parseTags(*in.Tags)
	}

	applyIfSet(&question.Location, in.Location)
	applyIfSet(&question.StartDate, in.StartDate)
	applyIfSet(&question.StartTime, in.StartTime)
	applyIfSet(&question.EndDate, in.EndDate)
	applyIfSet(&question.EndTime, in.EndTime)
	applyIfSet(&question.GroupName, in.GroupName)
	applyIfSet(&question.GroupDetails, in.GroupDetails)
	applyIfSet(&question.EventType, in.EventType)
	applyIfSet(&question.EventCategory, in.EventCategory)
	applyIfSet(&question.Free, in.Free)
	applyIfSet(&question.Charged, in.Charged)
	applyIfSet(&question.Price, in.Price)
	applyIfSet(&question.ImageURL, in.ImageURL)

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	cache.InvalidateQuestion(ctx, question.ID)
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, in DeleteQuestionInput) error {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return err
	}

	if question.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own questions")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own questions")
		}
	}

	if s.deletePolicy == config.DeletePolicyCascade {
		if err := s.answerRepo.DeleteByQuestion(ctx, in.QuestionID); err != nil {
			return err
		}
	}

	if err := s.questionRepo.Delete(ctx, in.QuestionID); err != nil {
		return err
	}
	cache.InvalidateQuestion(ctx, in.QuestionID)
	return nil
}

// ReconcileCounters recomputes num_answers from the answers table and writes
// it back. num_reads has no ground truth to rebuild from and is left alone.
func (s *QuestionService) ReconcileCounters(ctx context.Context, questionID uint) (*models.Question, error) {
	span, ctx := observability.NewSpan(ctx, "service.ReconcileCounters")
	defer span.End()
	span.AddAttributes(attribute.Int("question.id", int(questionID)))

	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		span.SetError(err)
		return nil, err
	}

	count, err := s.answerRepo.CountByQuestion(ctx, questionID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if err := s.questionRepo.SetCounter(ctx, questionID, models.CounterAnswers, int(count)); err != nil {
		span.SetError(err)
		return nil, err
	}
	cache.InvalidateQuestion(ctx, questionID)
	return s.questionRepo.GetByID(ctx, questionID)
}
