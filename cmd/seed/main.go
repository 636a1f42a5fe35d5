// Command main runs the database seeder for Askboard.
package main

import (
	"flag"
	"log"

	"askboard/internal/config"
	"askboard/internal/database"
	"askboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numQuestions := flag.Int("questions", 100, "Number of questions to create")
	maxAnswers := flag.Int("max-answers", 5, "Maximum answers per question")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d questions, up to %d answers each, clean=%v",
		*numUsers, *numQuestions, *maxAnswers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	questions, err := s.SeedQuestions(users, *numQuestions)
	if err != nil {
		log.Fatalf("Question seeding failed: %v", err)
	}
	if _, err := s.SeedAnswers(users, questions, *maxAnswers); err != nil {
		log.Fatalf("Answer seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
