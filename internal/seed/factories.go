// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"askboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded user.
const DefaultPassword = "password123"

var tagPool = []string{
	"go", "postgres", "redis", "docker", "testing", "http", "gorm",
	"caching", "deployment", "performance", "auth", "concurrency",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildQuestion constructs a question without persisting it, spreading
// created_at over the past maxDays for a realistic listing.
func (f *Factory) BuildQuestion(user *models.User, maxDays int, overrides ...func(*models.Question)) *models.Question {
	if maxDays <= 0 {
		maxDays = 90
	}

	question := &models.Question{
		Title:   strings.TrimSuffix(gofakeit.Question(), "?") + "?",
		Content: gofakeit.Paragraph(1, 3, 5, "\n"),
		Tags:    f.randomTags(),
		UserID:  user.ID,
	}

	daysBack := f.rand.Intn(maxDays)
	hoursBack := f.rand.Intn(24)
	question.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(question)
	}
	return question
}

// CreateQuestionsBatch persists multiple questions in a single DB call.
func (f *Factory) CreateQuestionsBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return f.db.Create(&questions).Error
}

// CreateAnswer constructs and persists an answer to the given question.
// The question's denormalized counter is NOT bumped here; the seeder
// reconciles counters in one pass at the end.
func (f *Factory) CreateAnswer(user *models.User, question *models.Question) (*models.Answer, error) {
	answer := &models.Answer{
		Content:    gofakeit.Paragraph(1, 2, 4, "\n"),
		UserID:     user.ID,
		QuestionID: question.ID,
	}
	answer.CreatedAt = question.CreatedAt.Add(
		time.Duration(f.rand.Intn(72)+1) * time.Hour)

	if err := f.db.Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (f *Factory) randomTags() []string {
	n := f.rand.Intn(3) + 1
	tags := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for len(tags) < n {
		tag := tagPool[f.rand.Intn(len(tagPool))]
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
