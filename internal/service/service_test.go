package service

import (
	"testing"
	"time"

	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

type testEnv struct {
	db         *gorm.DB
	parts      *repository.PartRepository
	tags       *repository.TagRepository
	questions  *repository.QuestionRepository
	collection *repository.CollectionRepository
	attempts   *repository.AttemptRepository

	catalog     *CatalogService
	collections *CollectionService
	quiz        *QuizService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:         db,
		parts:      repository.NewPartRepository(db),
		tags:       repository.NewTagRepository(db),
		questions:  repository.NewQuestionRepository(db),
		collection: repository.NewCollectionRepository(db),
		attempts:   repository.NewAttemptRepository(db),
	}
	env.catalog = NewCatalogService(env.parts, env.tags, env.questions, db)
	env.collections = NewCollectionService(env.collection, env.attempts, env.questions, nil, db)
	env.quiz = NewQuizService(env.collection, env.attempts, env.questions, db)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
		Role:     model.RoleUser,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createQuestion inserts an active question with one correct and one wrong
// option, returning it with answers preloaded.
func (e *testEnv) createQuestion(t *testing.T, text string) *model.Question {
	t.Helper()
	q := &model.Question{
		Text:            text,
		DifficultyLevel: model.DifficultyEasy,
		IsActive:        true,
		Answers: []model.Answer{
			{Text: "right: " + text, IsCorrect: true},
			{Text: "wrong: " + text, IsCorrect: false},
		},
	}
	require.NoError(t, e.db.Create(q).Error)
	return q
}

func (e *testEnv) createCollection(t *testing.T, slug string, active bool, pubDate time.Time, questions ...*model.Question) *model.QuestionCollection {
	t.Helper()
	c := &model.QuestionCollection{
		NameSlug:    model.NameSlug{Name: slug, Slug: slug},
		Description: "test collection",
		IsActive:    active,
		PubDate:     pubDate,
	}
	require.NoError(t, e.db.Create(c).Error)
	for i, q := range questions {
		require.NoError(t, e.db.Create(&model.CollectionQuestion{
			CollectionID: c.ID,
			QuestionID:   q.ID,
			Position:     i + 1,
		}).Error)
	}
	return c
}

func correctOf(t *testing.T, q *model.Question) *model.Answer {
	t.Helper()
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	t.Fatalf("question %d has no correct answer", q.ID)
	return nil
}

func wrongOf(t *testing.T, q *model.Question) *model.Answer {
	t.Helper()
	for i := range q.Answers {
		if !q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	t.Fatalf("question %d has no wrong answer", q.ID)
	return nil
}
