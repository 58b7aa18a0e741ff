package service

import (
	"testing"
	"time"

	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionWithNestedAnswers(t *testing.T) {
	env := newTestEnv(t)

	desc := "explained in chapter 8"
	q, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:            "Who teaches Potions?",
		DifficultyLevel: model.DifficultyMedium,
		Answers: []AnswerRequest{
			{Text: "Snape", IsCorrect: true, Description: &desc},
			{Text: "Quirrell"},
			{Text: "Flitwick"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, q.Answers, 3)
	assert.True(t, q.IsActive)

	_, err = env.catalog.CreateQuestion(QuestionRequest{Text: "bad", DifficultyLevel: 9})
	assert.ErrorIs(t, err, util.ErrInvalidDifficulty)
}

func TestUpdateQuestionReplacesAnswers(t *testing.T) {
	env := newTestEnv(t)
	q := env.createQuestion(t, "original")
	oldAnswerID := correctOf(t, q).ID

	updated, err := env.catalog.UpdateQuestion(q.ID, QuestionRequest{
		Text: "rewritten",
		Answers: []AnswerRequest{
			{Text: "only option", IsCorrect: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Text)
	require.Len(t, updated.Answers, 1)
	assert.NotEqual(t, oldAnswerID, updated.Answers[0].ID)

	var leftover int64
	require.NoError(t, env.db.Model(&model.Answer{}).Where("id = ?", oldAnswerID).Count(&leftover).Error)
	assert.Zero(t, leftover)
}

func TestUpdateQuestionKeepsAnswersWhenOmitted(t *testing.T) {
	env := newTestEnv(t)
	q := env.createQuestion(t, "original")

	updated, err := env.catalog.UpdateQuestion(q.ID, QuestionRequest{Text: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Text)
	assert.Len(t, updated.Answers, 2)
}

func TestDeleteQuestionCascades(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "harry")
	q := env.createQuestion(t, "doomed")
	c := env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)
	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &correctOf(t, q).ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteQuestion(q.ID))

	var answers int64
	require.NoError(t, env.db.Model(&model.Answer{}).Where("question_id = ?", q.ID).Count(&answers).Error)
	assert.Zero(t, answers)

	var links int64
	require.NoError(t, env.db.Model(&model.CollectionQuestion{}).Where("collection_id = ?", c.ID).Count(&links).Error)
	assert.Zero(t, links)

	// The recorded grade survives, only the dangling selection is nulled.
	var ua model.UserAnswer
	require.NoError(t, env.db.Where("attempt_id = ?", attempt.ID).First(&ua).Error)
	assert.Nil(t, ua.SelectedAnswerID)
	assert.True(t, ua.IsCorrect)

	err = env.catalog.DeleteQuestion(q.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestDeletePartUnlinksQuestions(t *testing.T) {
	env := newTestEnv(t)

	part, err := env.catalog.CreatePart(PartRequest{
		NameSlugRequest: NameSlugRequest{Name: "Philosopher's Stone", Slug: "philosophers-stone"},
		SerialNumber:    1,
	})
	require.NoError(t, err)

	q, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:   "filed under part one",
		PartID: &part.ID,
		Answers: []AnswerRequest{
			{Text: "yes", IsCorrect: true},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeletePart(part.ID))

	var reloaded model.Question
	require.NoError(t, env.db.First(&reloaded, q.ID).Error)
	assert.Nil(t, reloaded.PartID)
}

func TestPartSlugValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.catalog.CreatePart(PartRequest{
		NameSlugRequest: NameSlugRequest{Name: "Bad", Slug: "has spaces"},
		SerialNumber:    1,
	})
	assert.ErrorIs(t, err, util.ErrInvalidSlug)
}

func TestListQuestionsFilters(t *testing.T) {
	env := newTestEnv(t)

	part, err := env.catalog.CreatePart(PartRequest{
		NameSlugRequest: NameSlugRequest{Name: "Part One", Slug: "part-one"},
		SerialNumber:    1,
	})
	require.NoError(t, err)

	tag, err := env.catalog.CreateTag(NameSlugRequest{Name: "Spells", Slug: "spells"})
	require.NoError(t, err)

	hard, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:            "zz hard question",
		DifficultyLevel: model.DifficultyHard,
		PartID:          &part.ID,
		TagIDs:          []uint{tag.ID},
		Answers:         []AnswerRequest{{Text: "x", IsCorrect: true}},
	})
	require.NoError(t, err)

	easy, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:            "aa easy question",
		DifficultyLevel: model.DifficultyEasy,
		Answers:         []AnswerRequest{{Text: "x", IsCorrect: true}},
	})
	require.NoError(t, err)

	inactive := false
	hidden, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:     "hidden question",
		IsActive: &inactive,
		Answers:  []AnswerRequest{{Text: "x", IsCorrect: true}},
	})
	require.NoError(t, err)

	stored, err := env.catalog.GetQuestionFull(hidden.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	all, err := env.catalog.ListQuestions(repository.QuestionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, easy.ID, all[0].ID)
	assert.Equal(t, hard.ID, all[1].ID)

	byTag, err := env.catalog.ListQuestions(repository.QuestionFilter{TagID: tag.ID})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, hard.ID, byTag[0].ID)

	byPart, err := env.catalog.ListQuestions(repository.QuestionFilter{PartID: part.ID})
	require.NoError(t, err)
	require.Len(t, byPart, 1)

	_, err = env.catalog.ListQuestions(repository.QuestionFilter{Difficulty: 42})
	assert.ErrorIs(t, err, util.ErrInvalidDifficulty)
}

func TestGetQuestionHidesInactive(t *testing.T) {
	env := newTestEnv(t)
	q := env.createQuestion(t, "soon retired")
	require.NoError(t, env.db.Model(q).Update("is_active", false).Error)

	_, err := env.catalog.GetQuestion(q.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	full, err := env.catalog.GetQuestionFull(q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, full.ID)
}

func TestDeleteTagDropsLinks(t *testing.T) {
	env := newTestEnv(t)

	tag, err := env.catalog.CreateTag(NameSlugRequest{Name: "Creatures", Slug: "creatures"})
	require.NoError(t, err)

	q, err := env.catalog.CreateQuestion(QuestionRequest{
		Text:    "tagged question",
		TagIDs:  []uint{tag.ID},
		Answers: []AnswerRequest{{Text: "x", IsCorrect: true}},
	})
	require.NoError(t, err)

	require.NoError(t, env.catalog.DeleteTag(tag.ID))

	reloaded, err := env.catalog.GetQuestionFull(q.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}
