// Bulk question import.
//
// Reads a YAML fixture and creates the parts, tags, questions and answers it
// describes. Meant for first deployments or topping up the catalog from a
// prepared file.
//
// Usage: go run scripts/import_questions.go fixtures/questions.yaml

package main

import (
	"log"
	"os"

	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/pkg/database"
	"hp_quiz_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type fixtureAnswer struct {
	Text        string  `yaml:"text"`
	IsCorrect   bool    `yaml:"is_correct"`
	Description *string `yaml:"description"`
}

type fixtureQuestion struct {
	Text            string          `yaml:"text"`
	DifficultyLevel int             `yaml:"difficulty_level"`
	PartSlug        string          `yaml:"part"`
	Tags            []string        `yaml:"tags"`
	IsAnswerInBook  bool            `yaml:"is_answer_in_book"`
	IsAnswerInMovie bool            `yaml:"is_answer_in_movie"`
	Answers         []fixtureAnswer `yaml:"answers"`
}

type fixture struct {
	Questions []fixtureQuestion `yaml:"questions"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_questions <fixture.yaml>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read fixture: %v", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}

	imported := 0
	for _, fq := range fx.Questions {
		if err := importQuestion(db, fq); err != nil {
			log.Printf("Skipping %q: %v", fq.Text, err)
			continue
		}
		imported++
	}
	log.Printf("Imported %d of %d questions", imported, len(fx.Questions))
}

func importQuestion(db *gorm.DB, fq fixtureQuestion) error {
	question := model.Question{
		Text:            fq.Text,
		DifficultyLevel: fq.DifficultyLevel,
		IsAnswerInBook:  fq.IsAnswerInBook,
		IsAnswerInMovie: fq.IsAnswerInMovie,
		IsActive:        true,
	}
	if question.DifficultyLevel == 0 {
		question.DifficultyLevel = model.DifficultyEasy
	}

	if fq.PartSlug != "" {
		var part model.Part
		if err := db.Where("slug = ?", fq.PartSlug).First(&part).Error; err != nil {
			return err
		}
		question.PartID = &part.ID
	}

	for _, slug := range fq.Tags {
		var tag model.Tag
		err := db.Where("slug = ?", slug).First(&tag).Error
		if err == gorm.ErrRecordNotFound {
			tag = model.Tag{NameSlug: model.NameSlug{Name: slug, Slug: slug}}
			if err := db.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		question.Tags = append(question.Tags, tag)
	}

	for _, fa := range fq.Answers {
		question.Answers = append(question.Answers, model.Answer{
			Text:        fa.Text,
			IsCorrect:   fa.IsCorrect,
			Description: fa.Description,
		})
	}

	return db.Create(&question).Error
}
