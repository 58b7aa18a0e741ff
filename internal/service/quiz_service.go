package service

import (
	"errors"
	"time"

	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/util"
	"hp_quiz_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// QuizService drives the attempt lifecycle: start, answer, complete, review.
type QuizService struct {
	CollectionRepo *repository.CollectionRepository
	AttemptRepo    *repository.AttemptRepository
	QuestionRepo   *repository.QuestionRepository
	DB             *gorm.DB
}

func NewQuizService(collectionRepo *repository.CollectionRepository, attemptRepo *repository.AttemptRepository, questionRepo *repository.QuestionRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		CollectionRepo: collectionRepo,
		AttemptRepo:    attemptRepo,
		QuestionRepo:   questionRepo,
		DB:             db,
	}
}

// AttemptView is the attempt state returned to the client.
type AttemptView struct {
	ID             uint       `json:"id"`
	CollectionID   uint       `json:"collection_id"`
	CollectionSlug string     `json:"collection_slug"`
	AttemptDate    time.Time  `json:"attempt_date"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	AnsweredCount  int64      `json:"answered_count"`
	QuestionsCount int64      `json:"questions_count"`
}

// ResultView is a scored attempt outcome.
type ResultView struct {
	AttemptID    uint      `json:"attempt_id"`
	CollectionID uint      `json:"collection_id"`
	CorrectCount int       `json:"correct_count"`
	TotalCount   int       `json:"total_count"`
	CompletedAt  time.Time `json:"completed_at"`
}

// StartAttempt opens a new attempt on a published collection. An already-open
// attempt for the same pair is returned instead of creating a second one.
func (s *QuizService) StartAttempt(userID uint, slug string) (*AttemptView, error) {
	c, err := s.CollectionRepo.FindPublishedBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindOpenByUserAndCollection(userID, c.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if attempt == nil {
		attempt = &model.UserCollectionAttempt{
			UserID:       userID,
			CollectionID: c.ID,
			AttemptDate:  time.Now(),
		}
		if err := s.AttemptRepo.Create(attempt); err != nil {
			return nil, err
		}
		monitoring.AttemptsStarted.Inc()
	}
	return s.attemptView(attempt, c.Slug)
}

// GetAttempt returns the caller's attempt, open or completed.
func (s *QuizService) GetAttempt(userID, attemptID uint) (*AttemptView, error) {
	attempt, err := s.ownedAttempt(s.DB, userID, attemptID)
	if err != nil {
		return nil, err
	}
	c, err := s.CollectionRepo.FindByID(attempt.CollectionID)
	if err != nil {
		return nil, err
	}
	return s.attemptView(attempt, c.Slug)
}

func (s *QuizService) attemptView(attempt *model.UserCollectionAttempt, slug string) (*AttemptView, error) {
	answered, err := s.AttemptRepo.CountAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.CollectionRepo.QuestionCount(attempt.CollectionID)
	if err != nil {
		return nil, err
	}
	return &AttemptView{
		ID:             attempt.ID,
		CollectionID:   attempt.CollectionID,
		CollectionSlug: slug,
		AttemptDate:    attempt.AttemptDate,
		CompletedAt:    attempt.CompletedAt,
		AnsweredCount:  answered,
		QuestionsCount: total,
	}, nil
}

type SubmitAnswerRequest struct {
	QuestionID       uint  `json:"question_id" binding:"required"`
	SelectedOptionID *uint `json:"selected_option_id"`
}

// SubmittedAnswer reports the graded outcome of one submission.
type SubmittedAnswer struct {
	QuestionID       uint  `json:"question_id"`
	SelectedOptionID *uint `json:"selected_option_id"`
	IsCorrect        bool  `json:"is_correct"`
}

// SubmitAnswer grades one question inside an open attempt. Each question may
// be answered once per attempt; a nil selection records a skip and grades
// incorrect.
func (s *QuizService) SubmitAnswer(userID, attemptID uint, req SubmitAnswerRequest) (*SubmittedAnswer, error) {
	var out *SubmittedAnswer
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.ownedAttempt(tx, userID, attemptID)
		if err != nil {
			return err
		}
		if !attempt.InProgress() {
			return util.ErrAttemptCompleted
		}

		var question model.Question
		err = tx.Where("is_active = ?", true).First(&question, req.QuestionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		} else if err != nil {
			return err
		}

		var linked int64
		err = tx.Model(&model.CollectionQuestion{}).
			Where("collection_id = ? AND question_id = ?", attempt.CollectionID, question.ID).
			Count(&linked).Error
		if err != nil {
			return err
		}
		if linked == 0 {
			return util.ErrQuestionNotInCollection
		}

		var answered int64
		err = tx.Model(&model.UserAnswer{}).
			Where("attempt_id = ? AND question_id = ?", attemptID, question.ID).
			Count(&answered).Error
		if err != nil {
			return err
		}
		if answered > 0 {
			return util.ErrQuestionAlreadyAnswered
		}

		isCorrect := false
		if req.SelectedOptionID != nil {
			var option model.Answer
			err = tx.Where("question_id = ?", question.ID).First(&option, *req.SelectedOptionID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAnswerNotOfQuestion
			} else if err != nil {
				return err
			}
			isCorrect = option.IsCorrect
		}

		ua := model.UserAnswer{
			UserID:           userID,
			QuestionID:       question.ID,
			SelectedAnswerID: req.SelectedOptionID,
			IsCorrect:        isCorrect,
			AttemptID:        attemptID,
		}
		if err := tx.Create(&ua).Error; err != nil {
			return err
		}

		out = &SubmittedAnswer{
			QuestionID:       question.ID,
			SelectedOptionID: req.SelectedOptionID,
			IsCorrect:        isCorrect,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteAttempt closes the attempt and writes its result. Every question of
// the collection must have been answered first.
func (s *QuizService) CompleteAttempt(userID, attemptID uint) (*ResultView, error) {
	var out *ResultView
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.ownedAttempt(tx, userID, attemptID)
		if err != nil {
			return err
		}
		if !attempt.InProgress() {
			return util.ErrAttemptCompleted
		}

		// Inactive questions are never served, so they do not count toward
		// completion. Answers to questions deactivated mid-attempt are
		// excluded the same way, on both sides of the comparison.
		var activeIDs []uint
		err = tx.Model(&model.CollectionQuestion{}).
			Joins("JOIN questions ON questions.id = collection_questions.question_id").
			Where("collection_questions.collection_id = ?", attempt.CollectionID).
			Where("questions.is_active = ? AND questions.deleted_at IS NULL", true).
			Pluck("collection_questions.question_id", &activeIDs).Error
		if err != nil {
			return err
		}
		active := make(map[uint]bool, len(activeIDs))
		for _, id := range activeIDs {
			active[id] = true
		}

		var answers []model.UserAnswer
		if err := tx.Where("attempt_id = ?", attemptID).Find(&answers).Error; err != nil {
			return err
		}

		answered := 0
		correct := 0
		for _, a := range answers {
			if !active[a.QuestionID] {
				continue
			}
			answered++
			if a.IsCorrect {
				correct++
			}
		}
		if answered != len(activeIDs) {
			return util.ErrAttemptIncomplete
		}
		total := int64(len(activeIDs))

		now := time.Now()
		attempt.CompletedAt = &now
		if err := tx.Save(attempt).Error; err != nil {
			return err
		}

		result := model.UserCollectionResult{
			AttemptID:    attemptID,
			UserID:       userID,
			CollectionID: attempt.CollectionID,
			CorrectCount: correct,
			TotalCount:   int(total),
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		out = &ResultView{
			AttemptID:    attemptID,
			CollectionID: attempt.CollectionID,
			CorrectCount: correct,
			TotalCount:   int(total),
			CompletedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	monitoring.AttemptsCompleted.Inc()
	return out, nil
}

// AttemptAnswers returns the caller's recorded answers for an attempt.
func (s *QuizService) AttemptAnswers(userID, attemptID uint) ([]SubmittedAnswer, error) {
	if _, err := s.ownedAttempt(s.DB, userID, attemptID); err != nil {
		return nil, err
	}
	answers, err := s.AttemptRepo.AnswersByAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	views := make([]SubmittedAnswer, 0, len(answers))
	for _, a := range answers {
		views = append(views, SubmittedAnswer{
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedAnswerID,
			IsCorrect:        a.IsCorrect,
		})
	}
	return views, nil
}

// ListResults returns the caller's scores for a collection, newest first.
func (s *QuizService) ListResults(userID uint, slug string) ([]ResultView, error) {
	c, err := s.CollectionRepo.FindPublishedBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}
	results, err := s.AttemptRepo.ResultsByUserAndCollection(userID, c.ID)
	if err != nil {
		return nil, err
	}
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, ResultView{
			AttemptID:    r.AttemptID,
			CollectionID: r.CollectionID,
			CorrectCount: r.CorrectCount,
			TotalCount:   r.TotalCount,
			CompletedAt:  r.CreatedAt,
		})
	}
	return views, nil
}

// ownedAttempt loads the attempt and hides other users' attempts behind a
// not-found error.
func (s *QuizService) ownedAttempt(tx *gorm.DB, userID, attemptID uint) (*model.UserCollectionAttempt, error) {
	var attempt model.UserCollectionAttempt
	err := tx.First(&attempt, attemptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	} else if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrAttemptNotFound
	}
	return &attempt, nil
}
