package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/util"
	"hp_quiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	publishedCollectionsKey = "quiz:collections:published"
	publishedCollectionsTTL = 5 * time.Minute
)

// CollectionService lists published collections with per-user progress and
// renders a collection's questions with the caller's selections highlighted.
type CollectionService struct {
	CollectionRepo *repository.CollectionRepository
	AttemptRepo    *repository.AttemptRepository
	QuestionRepo   *repository.QuestionRepository
	Redis          *redis.Client
	DB             *gorm.DB
}

func NewCollectionService(collectionRepo *repository.CollectionRepository, attemptRepo *repository.AttemptRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client, db *gorm.DB) *CollectionService {
	return &CollectionService{
		CollectionRepo: collectionRepo,
		AttemptRepo:    attemptRepo,
		QuestionRepo:   questionRepo,
		Redis:          rdb,
		DB:             db,
	}
}

// CollectionInfo is a published collection annotated for one user.
type CollectionInfo struct {
	ID             uint      `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PubDate        time.Time `json:"pub_date"`
	QuestionsCount int64     `json:"questions_count"`
	InProcess      bool      `json:"in_process"`
	Result         *int      `json:"result"`
}

// AnswerOption is one selectable option. Correctness is only revealed through
// the highlight after the caller has answered the question.
type AnswerOption struct {
	ID        uint            `json:"id"`
	Text      string          `json:"text"`
	Highlight model.Highlight `json:"highlight"`
}

// QuestionView is a question rendered for the quiz flow.
type QuestionView struct {
	QuestionID       uint           `json:"question_id"`
	Text             string         `json:"text"`
	Image            string         `json:"image"`
	DifficultyLevel  int            `json:"difficulty_level"`
	Options          []AnswerOption `json:"options"`
	SelectedOptionID *uint          `json:"selected_option_id"`
	IsLastQuestion   bool           `json:"is_last_question"`
}

// ListPublished returns the published collections newest first, each annotated
// with the caller's open attempt and latest score. Pass userID 0 for an
// anonymous listing.
func (s *CollectionService) ListPublished(ctx context.Context, userID uint) ([]CollectionInfo, error) {
	collections, err := s.publishedCollections(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(collections))
	for _, c := range collections {
		ids = append(ids, c.ID)
	}
	counts, err := s.CollectionRepo.QuestionCounts(ids)
	if err != nil {
		return nil, err
	}

	infos := make([]CollectionInfo, 0, len(collections))
	for _, c := range collections {
		info := CollectionInfo{
			ID:             c.ID,
			Slug:           c.Slug,
			Name:           c.Name,
			Description:    c.Description,
			PubDate:        c.PubDate,
			QuestionsCount: counts[c.ID],
		}
		if userID > 0 {
			if err := s.annotate(&info, userID); err != nil {
				return nil, err
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetPublished returns a single published collection annotated for the user.
func (s *CollectionService) GetPublished(slug string, userID uint) (*CollectionInfo, error) {
	c, err := s.CollectionRepo.FindPublishedBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}

	count, err := s.CollectionRepo.QuestionCount(c.ID)
	if err != nil {
		return nil, err
	}
	info := &CollectionInfo{
		ID:             c.ID,
		Slug:           c.Slug,
		Name:           c.Name,
		Description:    c.Description,
		PubDate:        c.PubDate,
		QuestionsCount: count,
	}
	if userID > 0 {
		if err := s.annotate(info, userID); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func (s *CollectionService) annotate(info *CollectionInfo, userID uint) error {
	open, err := s.AttemptRepo.HasOpenAttempt(userID, info.ID)
	if err != nil {
		return err
	}
	info.InProcess = open

	result, err := s.AttemptRepo.LatestResult(userID, info.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	score := result.CorrectCount
	info.Result = &score
	return nil
}

// Questions renders the collection's questions in stored order. Options of
// questions already answered in the caller's open attempt carry CORRECT or
// INCORRECT highlights; everything else stays DEFAULT.
func (s *CollectionService) Questions(slug string, userID uint) ([]QuestionView, error) {
	c, err := s.CollectionRepo.FindPublishedBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}

	questions, err := s.CollectionRepo.QuestionsInOrder(c.ID)
	if err != nil {
		return nil, err
	}

	selections := map[uint]model.UserAnswer{}
	if userID > 0 {
		attempt, err := s.AttemptRepo.FindOpenByUserAndCollection(userID, c.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if attempt != nil {
			answers, err := s.AttemptRepo.AnswersByAttempt(attempt.ID)
			if err != nil {
				return nil, err
			}
			for _, ua := range answers {
				selections[ua.QuestionID] = ua
			}
		}
	}

	views := make([]QuestionView, 0, len(questions))
	for i, q := range questions {
		view := QuestionView{
			QuestionID:      q.ID,
			Text:            q.Text,
			Image:           q.Image,
			DifficultyLevel: q.DifficultyLevel,
			Options:         make([]AnswerOption, 0, len(q.Answers)),
			IsLastQuestion:  i == len(questions)-1,
		}
		ua, answered := selections[q.ID]
		if answered {
			view.SelectedOptionID = ua.SelectedAnswerID
		}
		for _, a := range q.Answers {
			option := AnswerOption{ID: a.ID, Text: a.Text, Highlight: model.HighlightDefault}
			if answered {
				switch {
				case a.IsCorrect:
					option.Highlight = model.HighlightCorrect
				case ua.SelectedAnswerID != nil && *ua.SelectedAnswerID == a.ID:
					option.Highlight = model.HighlightIncorrect
				}
			}
			view.Options = append(view.Options, option)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CollectionService) publishedCollections(ctx context.Context) ([]model.QuestionCollection, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, publishedCollectionsKey).Result()
		if err == nil {
			var collections []model.QuestionCollection
			if json.Unmarshal([]byte(cached), &collections) == nil {
				return collections, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Collection cache read failed", zap.Error(err))
		}
	}

	collections, err := s.CollectionRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(collections); err == nil {
			if err := s.Redis.Set(ctx, publishedCollectionsKey, payload, publishedCollectionsTTL).Err(); err != nil {
				logger.Log.Warn("Collection cache write failed", zap.Error(err))
			}
		}
	}
	return collections, nil
}

func (s *CollectionService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, publishedCollectionsKey).Err(); err != nil {
		logger.Log.Warn("Collection cache invalidation failed", zap.Error(err))
	}
}

type CollectionRequest struct {
	NameSlugRequest
	Description string     `json:"description" binding:"required"`
	IsActive    *bool      `json:"is_active"`
	PubDate     *time.Time `json:"pub_date"`
}

func (s *CollectionService) List(page, limit int) ([]model.QuestionCollection, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CollectionRepo.List(page, limit)
}

func (s *CollectionService) Create(ctx context.Context, req CollectionRequest) (*model.QuestionCollection, error) {
	if !util.ValidSlug(req.Slug) {
		return nil, util.ErrInvalidSlug
	}
	c := &model.QuestionCollection{
		NameSlug:    model.NameSlug{Name: req.Name, Slug: req.Slug},
		Description: req.Description,
		PubDate:     time.Now(),
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.PubDate != nil {
		c.PubDate = *req.PubDate
	}
	if err := s.CollectionRepo.Create(c); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return c, nil
}

func (s *CollectionService) Update(ctx context.Context, id uint, req CollectionRequest) (*model.QuestionCollection, error) {
	if !util.ValidSlug(req.Slug) {
		return nil, util.ErrInvalidSlug
	}
	c, err := s.CollectionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Slug = req.Slug
	c.Description = req.Description
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if req.PubDate != nil {
		c.PubDate = *req.PubDate
	}
	if err := s.CollectionRepo.Update(c); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return c, nil
}

func (s *CollectionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.CollectionRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCollectionNotFound
	} else if err != nil {
		return err
	}
	if err := s.CollectionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// SetQuestions replaces the collection's question list in the given order.
func (s *CollectionService) SetQuestions(ctx context.Context, id uint, questionIDs []uint) error {
	if _, err := s.CollectionRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCollectionNotFound
	} else if err != nil {
		return err
	}
	for _, qid := range questionIDs {
		if _, err := s.QuestionRepo.FindByID(qid); errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		} else if err != nil {
			return err
		}
	}
	if err := s.CollectionRepo.SetQuestions(id, questionIDs); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}
