package database

import (
	"fmt"
	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate creates or updates the schema for every entity, then seeds the
// story parts on an empty database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Part{},
		&model.Tag{},
		&model.Question{},
		&model.Answer{},
		&model.QuestionCollection{},
		&model.CollectionQuestion{},
		&model.UserCollectionAttempt{},
		&model.UserAnswer{},
		&model.UserCollectionResult{},
	)
	if err != nil {
		return err
	}
	seedParts(db)
	return nil
}

// seedParts inserts the seven story parts on an empty database so questions
// can be filed immediately.
func seedParts(db *gorm.DB) {
	var count int64
	db.Model(&model.Part{}).Count(&count)
	if count > 0 {
		return
	}
	defaultParts := []model.Part{
		{NameSlug: model.NameSlug{Name: "Philosopher's Stone", Slug: "philosophers-stone"}, SerialNumber: 1},
		{NameSlug: model.NameSlug{Name: "Chamber of Secrets", Slug: "chamber-of-secrets"}, SerialNumber: 2},
		{NameSlug: model.NameSlug{Name: "Prisoner of Azkaban", Slug: "prisoner-of-azkaban"}, SerialNumber: 3},
		{NameSlug: model.NameSlug{Name: "Goblet of Fire", Slug: "goblet-of-fire"}, SerialNumber: 4},
		{NameSlug: model.NameSlug{Name: "Order of the Phoenix", Slug: "order-of-the-phoenix"}, SerialNumber: 5},
		{NameSlug: model.NameSlug{Name: "Half-Blood Prince", Slug: "half-blood-prince"}, SerialNumber: 6},
		{NameSlug: model.NameSlug{Name: "Deathly Hallows", Slug: "deathly-hallows"}, SerialNumber: 7},
	}
	for _, p := range defaultParts {
		db.Create(&p)
	}
}
