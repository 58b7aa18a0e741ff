package service

import (
	"testing"
	"time"

	"hp_quiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAttemptResumesOpenAttempt(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "harry")
	q := env.createQuestion(t, "Who teaches Potions?")
	env.createCollection(t, "year-one", true, time.Now().Add(-time.Hour), q)

	first, err := env.quiz.StartAttempt(user.ID, "year-one")
	require.NoError(t, err)
	assert.Nil(t, first.CompletedAt)
	assert.Equal(t, int64(1), first.QuestionsCount)

	second, err := env.quiz.StartAttempt(user.ID, "year-one")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartAttemptUnpublishedCollection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "harry")
	env.createCollection(t, "draft", false, time.Now().Add(-time.Hour))
	env.createCollection(t, "future", true, time.Now().Add(time.Hour))

	_, err := env.quiz.StartAttempt(user.ID, "draft")
	assert.ErrorIs(t, err, util.ErrCollectionNotFound)

	_, err = env.quiz.StartAttempt(user.ID, "future")
	assert.ErrorIs(t, err, util.ErrCollectionNotFound)

	_, err = env.quiz.StartAttempt(user.ID, "missing")
	assert.ErrorIs(t, err, util.ErrCollectionNotFound)
}

func TestSubmitAnswerGradesSelection(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "hermione")
	q1 := env.createQuestion(t, "q1")
	q2 := env.createQuestion(t, "q2")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q1, q2)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	right, err := env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q1.ID,
		SelectedOptionID: &correctOf(t, q1).ID,
	})
	require.NoError(t, err)
	assert.True(t, right.IsCorrect)

	wrong, err := env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q2.ID,
		SelectedOptionID: &wrongOf(t, q2).ID,
	})
	require.NoError(t, err)
	assert.False(t, wrong.IsCorrect)
}

func TestSubmitAnswerSkipGradesIncorrect(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ron")
	q := env.createQuestion(t, "q1")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	skipped, err := env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{QuestionID: q.ID})
	require.NoError(t, err)
	assert.False(t, skipped.IsCorrect)
	assert.Nil(t, skipped.SelectedOptionID)
}

func TestSubmitAnswerRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "neville")
	q := env.createQuestion(t, "q1")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &correctOf(t, q).ID,
	})
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &wrongOf(t, q).ID,
	})
	assert.ErrorIs(t, err, util.ErrQuestionAlreadyAnswered)
}

func TestSubmitAnswerValidatesMembership(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "luna")
	inside := env.createQuestion(t, "inside")
	outside := env.createQuestion(t, "outside")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), inside)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       outside.ID,
		SelectedOptionID: &correctOf(t, outside).ID,
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotInCollection)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{QuestionID: 99999})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	// An option belonging to a different question is rejected.
	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       inside.ID,
		SelectedOptionID: &correctOf(t, outside).ID,
	})
	assert.ErrorIs(t, err, util.ErrAnswerNotOfQuestion)
}

func TestSubmitAnswerHidesForeignAttempts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "harry")
	intruder := env.createUser(t, "draco")
	q := env.createQuestion(t, "q1")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q)

	attempt, err := env.quiz.StartAttempt(owner.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(intruder.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &correctOf(t, q).ID,
	})
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)

	_, err = env.quiz.GetAttempt(intruder.ID, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestCompleteAttemptScoresAndCloses(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ginny")
	q1 := env.createQuestion(t, "q1")
	q2 := env.createQuestion(t, "q2")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q1, q2)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q1.ID,
		SelectedOptionID: &correctOf(t, q1).ID,
	})
	require.NoError(t, err)
	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q2.ID,
		SelectedOptionID: &wrongOf(t, q2).ID,
	})
	require.NoError(t, err)

	result, err := env.quiz.CompleteAttempt(user.ID, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalCount)

	closed, err := env.quiz.GetAttempt(user.ID, attempt.ID)
	require.NoError(t, err)
	assert.NotNil(t, closed.CompletedAt)

	_, err = env.quiz.CompleteAttempt(user.ID, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptCompleted)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q1.ID,
		SelectedOptionID: &correctOf(t, q1).ID,
	})
	assert.ErrorIs(t, err, util.ErrAttemptCompleted)
}

func TestCompleteAttemptRequiresAllAnswers(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "cho")
	q1 := env.createQuestion(t, "q1")
	q2 := env.createQuestion(t, "q2")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q1, q2)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q1.ID,
		SelectedOptionID: &correctOf(t, q1).ID,
	})
	require.NoError(t, err)

	_, err = env.quiz.CompleteAttempt(user.ID, attempt.ID)
	assert.ErrorIs(t, err, util.ErrAttemptIncomplete)
}

func TestCompleteAttemptIgnoresDeactivatedQuestions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "percy")
	q1 := env.createQuestion(t, "q1")
	q2 := env.createQuestion(t, "q2")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q1, q2)

	attempt, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)

	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q1.ID,
		SelectedOptionID: &correctOf(t, q1).ID,
	})
	require.NoError(t, err)
	_, err = env.quiz.SubmitAnswer(user.ID, attempt.ID, SubmitAnswerRequest{
		QuestionID:       q2.ID,
		SelectedOptionID: &correctOf(t, q2).ID,
	})
	require.NoError(t, err)

	// A question deactivated after being answered drops out of the score
	// instead of blocking completion.
	require.NoError(t, env.db.Model(q2).Update("is_active", false).Error)

	result, err := env.quiz.CompleteAttempt(user.ID, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 1, result.TotalCount)
}

func TestAttemptsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "fred")
	q := env.createQuestion(t, "q1")
	env.createCollection(t, "owls", true, time.Now().Add(-time.Hour), q)

	first, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)
	_, err = env.quiz.SubmitAnswer(user.ID, first.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &wrongOf(t, q).ID,
	})
	require.NoError(t, err)
	_, err = env.quiz.CompleteAttempt(user.ID, first.ID)
	require.NoError(t, err)

	second, err := env.quiz.StartAttempt(user.ID, "owls")
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// The same question is answerable again in the new attempt.
	graded, err := env.quiz.SubmitAnswer(user.ID, second.ID, SubmitAnswerRequest{
		QuestionID:       q.ID,
		SelectedOptionID: &correctOf(t, q).ID,
	})
	require.NoError(t, err)
	assert.True(t, graded.IsCorrect)

	result, err := env.quiz.CompleteAttempt(user.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectCount)

	results, err := env.quiz.ListResults(user.ID, "owls")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, second.ID, results[0].AttemptID)
	assert.Equal(t, first.ID, results[1].AttemptID)
}
