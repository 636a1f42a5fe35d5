package seed

import (
	"fmt"
	"log"

	"askboard/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with demo users, questions, and answers.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters because answers
// reference questions.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{&models.Answer{}, &models.Question{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n demo users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedQuestions creates n questions spread across the given users.
func (s *Seeder) SeedQuestions(users []*models.User, n int) ([]*models.Question, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed questions without users")
	}

	questions := make([]*models.Question, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rand.Intn(len(users))]
		questions = append(questions, s.factory.BuildQuestion(author, 90))
	}
	if err := s.factory.CreateQuestionsBatch(questions); err != nil {
		return nil, fmt.Errorf("seed questions: %w", err)
	}
	log.Printf("Seeded %d questions", len(questions))
	return questions, nil
}

// SeedAnswers creates up to maxPerQuestion answers on each question, then
// reconciles the denormalized answer counters in one pass.
func (s *Seeder) SeedAnswers(users []*models.User, questions []*models.Question, maxPerQuestion int) (int, error) {
	if maxPerQuestion <= 0 {
		maxPerQuestion = 5
	}

	total := 0
	for _, question := range questions {
		for i := s.factory.rand.Intn(maxPerQuestion + 1); i > 0; i-- {
			author := users[s.factory.rand.Intn(len(users))]
			if _, err := s.factory.CreateAnswer(author, question); err != nil {
				return total, fmt.Errorf("seed answer on question %d: %w", question.ID, err)
			}
			total++
		}
	}

	if err := s.reconcileAnswerCounts(); err != nil {
		return total, err
	}
	log.Printf("Seeded %d answers", total)
	return total, nil
}

// reconcileAnswerCounts rewrites num_answers from the answers table.
func (s *Seeder) reconcileAnswerCounts() error {
	return s.db.Exec(`
		UPDATE questions SET num_answers = (
			SELECT COUNT(*) FROM answers
			WHERE answers.question_id = questions.id
			  AND answers.deleted_at IS NULL
		)
	`).Error
}
