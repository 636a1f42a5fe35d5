package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"askboard/internal/featureflags"
	"askboard/internal/models"
	"askboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuestionRepository is a mock of the QuestionRepository interface
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, term string, limit, offset int) ([]*models.Question, int64, error) {
	args := m.Called(ctx, term, limit, offset)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) Increment(ctx context.Context, id uint, counter string, delta int) (*models.Question, error) {
	args := m.Called(ctx, id, counter, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) SetCounter(ctx context.Context, id uint, counter string, value int) error {
	args := m.Called(ctx, id, counter, value)
	return args.Error(0)
}

// MockAnswerRepository is a mock of the AnswerRepository interface
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockAnswerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	args := m.Called(ctx, questionID)
	return args.Get(0).([]*models.Answer), args.Error(1)
}

func (m *MockAnswerRepository) CountByQuestion(ctx context.Context, questionID uint) (int64, error) {
	args := m.Called(ctx, questionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerRepository) DeleteByQuestion(ctx context.Context, questionID uint) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

// newTestServer wires a Server over mocked repositories with a logged-in user.
func newTestServer(questionRepo *MockQuestionRepository, answerRepo *MockAnswerRepository) (*Server, *fiber.App) {
	s := &Server{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		featureFlags: featureflags.NewManager("counter_reconcile=on"),
	}
	s.questionService = service.NewQuestionService(questionRepo, answerRepo, "", nil)
	s.answerService = service.NewAnswerService(answerRepo, questionRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return s, app
}

func TestGetQuestions(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Get("/questions", s.GetQuestions)

	questionRepo.On("List", mock.Anything, "redis", 10, 10).
		Return([]*models.Question{{Title: "Q"}}, int64(25), nil)

	req := httptest.NewRequest(http.MethodGet, "/questions?term=redis&page=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.Page[*models.Question]
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.PageCount)
	assert.Equal(t, 2, page.Page)
	questionRepo.AssertExpectations(t)
}

func TestGetQuestion_CountsRead(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	answerRepo := new(MockAnswerRepository)
	s, app := newTestServer(questionRepo, answerRepo)
	app.Get("/questions/:id", s.GetQuestion)

	questionRepo.On("Increment", mock.Anything, uint(7), models.CounterReads, 1).
		Return(&models.Question{Title: "Q", NumReads: 4}, nil)
	answerRepo.On("ListByQuestion", mock.Anything, uint(7)).
		Return([]*models.Answer{{Content: "try an index"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/questions/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Question models.Question `json:"question"`
		Answers  []models.Answer `json:"answers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, 4, view.Question.NumReads)
	assert.Len(t, view.Answers, 1)
	questionRepo.AssertExpectations(t)
	answerRepo.AssertExpectations(t)
}

func TestGetQuestion_NotFound(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Get("/questions/:id", s.GetQuestion)

	questionRepo.On("Increment", mock.Anything, uint(99), models.CounterReads, 1).
		Return(nil, models.NewNotFoundError("Question", 99))

	req := httptest.NewRequest(http.MethodGet, "/questions/99", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetQuestion_BadID(t *testing.T) {
	s, app := newTestServer(new(MockQuestionRepository), new(MockAnswerRepository))
	app.Get("/questions/:id", s.GetQuestion)

	req := httptest.NewRequest(http.MethodGet, "/questions/abc", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateQuestion(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Post("/questions", s.CreateQuestion)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"title":   "How do I index this?",
				"content": "Query is slow",
				"tags":    "postgres indexing",
			},
			mockSetup: func() {
				questionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
				questionRepo.On("GetByID", mock.Anything, mock.Anything).
					Return(&models.Question{Title: "How do I index this?"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Tags",
			body: map[string]string{
				"title":   "Untagged",
				"content": "Body",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Fields",
			body:           map[string]string{"title": ""},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/questions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdateQuestion_EventMetadata(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Put("/questions/:id", s.UpdateQuestion)

	questionRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Question{UserID: 1, Title: "meetup", Content: "details", Location: "room 101"}, nil)
	var saved *models.Question
	questionRepo.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Question) }).
		Return(nil)

	body, _ := json.Marshal(map[string]string{"location": "room 202", "startDate": "2026-09-01"})
	req := httptest.NewRequest(http.MethodPut, "/questions/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, saved)
	assert.Equal(t, "room 202", saved.Location)
	assert.Equal(t, "2026-09-01", saved.StartDate)
	assert.Equal(t, "meetup", saved.Title)
}

func TestUpdateQuestion_Forbidden(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Put("/questions/:id", s.UpdateQuestion)

	// Question belongs to user 2 while the request comes from user 1.
	questionRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Question{UserID: 2, Title: "Q"}, nil)

	body, _ := json.Marshal(map[string]string{"title": "hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/questions/3", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	questionRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteQuestion(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	app.Delete("/questions/:id", s.DeleteQuestion)

	questionRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Question{UserID: 1}, nil)
	questionRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/questions/3", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	questionRepo.AssertExpectations(t)
}

func TestReconcileQuestion(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	answerRepo := new(MockAnswerRepository)
	s, app := newTestServer(questionRepo, answerRepo)
	app.Post("/questions/:id/reconcile", s.ReconcileQuestion)

	questionRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Question{NumAnswers: 2}, nil)
	answerRepo.On("CountByQuestion", mock.Anything, uint(3)).Return(int64(5), nil)
	questionRepo.On("SetCounter", mock.Anything, uint(3), models.CounterAnswers, 5).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/questions/3/reconcile", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	questionRepo.AssertExpectations(t)
	answerRepo.AssertExpectations(t)
}

func TestReconcileQuestion_FlagOff(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	s, app := newTestServer(questionRepo, new(MockAnswerRepository))
	s.featureFlags = featureflags.NewManager("counter_reconcile=off")
	app.Post("/questions/:id/reconcile", s.ReconcileQuestion)

	req := httptest.NewRequest(http.MethodPost, "/questions/3/reconcile", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	questionRepo.AssertNotCalled(t, "SetCounter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
