package service

import (
	"errors"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/repository"
	"hp_quiz_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService serves the static quiz material: parts, tags, questions and
// their answer options, plus the editor-side CRUD for all of them.
type CatalogService struct {
	PartRepo     *repository.PartRepository
	TagRepo      *repository.TagRepository
	QuestionRepo *repository.QuestionRepository
	DB           *gorm.DB
}

func NewCatalogService(partRepo *repository.PartRepository, tagRepo *repository.TagRepository, questionRepo *repository.QuestionRepository, db *gorm.DB) *CatalogService {
	return &CatalogService{
		PartRepo:     partRepo,
		TagRepo:      tagRepo,
		QuestionRepo: questionRepo,
		DB:           db,
	}
}

func (s *CatalogService) ListParts() ([]model.Part, error) {
	return s.PartRepo.FindAll()
}

func (s *CatalogService) GetPartBySlug(slug string) (*model.Part, error) {
	part, err := s.PartRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPartNotFound
	}
	return part, err
}

func (s *CatalogService) ListTags() ([]model.Tag, error) {
	return s.TagRepo.FindAll()
}

func (s *CatalogService) GetTagBySlug(slug string) (*model.Tag, error) {
	tag, err := s.TagRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTagNotFound
	}
	return tag, err
}

func (s *CatalogService) ListQuestions(filter repository.QuestionFilter) ([]model.Question, error) {
	if filter.Difficulty != 0 && !model.ValidDifficulty(filter.Difficulty) {
		return nil, util.ErrInvalidDifficulty
	}
	return s.QuestionRepo.ListActive(filter)
}

// GetQuestionFull returns a question regardless of is_active, answers with
// correctness included. Editor use only.
func (s *CatalogService) GetQuestionFull(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

func (s *CatalogService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindActiveByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return q, err
}

type NameSlugRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type PartRequest struct {
	NameSlugRequest
	SerialNumber uint `json:"serial_number" binding:"required,gt=0"`
}

func (s *CatalogService) CreatePart(req PartRequest) (*model.Part, error) {
	if !util.ValidSlug(req.Slug) {
		return nil, util.ErrInvalidSlug
	}
	part := &model.Part{
		NameSlug:     model.NameSlug{Name: req.Name, Slug: req.Slug},
		SerialNumber: req.SerialNumber,
	}
	if err := s.PartRepo.Create(part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *CatalogService) UpdatePart(id uint, req PartRequest) (*model.Part, error) {
	if !util.ValidSlug(req.Slug) {
		return nil, util.ErrInvalidSlug
	}
	part, err := s.PartRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPartNotFound
	} else if err != nil {
		return nil, err
	}
	part.Name = req.Name
	part.Slug = req.Slug
	part.SerialNumber = req.SerialNumber
	if err := s.PartRepo.Update(part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *CatalogService) DeletePart(id uint) error {
	if _, err := s.PartRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrPartNotFound
	} else if err != nil {
		return err
	}
	return s.PartRepo.Delete(id)
}

func (s *CatalogService) CreateTag(req NameSlugRequest) (*model.Tag, error) {
	if !util.ValidSlug(req.Slug) {
		return nil, util.ErrInvalidSlug
	}
	tag := &model.Tag{NameSlug: model.NameSlug{Name: req.Name, Slug: req.Slug}}
	if err := s.TagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *CatalogService) DeleteTag(id uint) error {
	return s.TagRepo.Delete(id)
}

type AnswerRequest struct {
	Text        string  `json:"text" binding:"required"`
	IsCorrect   bool    `json:"is_correct"`
	Description *string `json:"description"`
}

type QuestionRequest struct {
	Text               string          `json:"text" binding:"required"`
	AnswerRequirements *string         `json:"answer_requirements"`
	DifficultyLevel    int             `json:"difficulty_level"`
	PartID             *uint           `json:"part_id"`
	TagIDs             []uint          `json:"tag_ids"`
	IsAnswerInBook     bool            `json:"is_answer_in_book"`
	IsAnswerInMovie    bool            `json:"is_answer_in_movie"`
	IsActive           *bool           `json:"is_active"`
	Answers            []AnswerRequest `json:"answers"`
}

func (s *CatalogService) CreateQuestion(req QuestionRequest) (*model.Question, error) {
	if req.DifficultyLevel == 0 {
		req.DifficultyLevel = model.DifficultyEasy
	}
	if !model.ValidDifficulty(req.DifficultyLevel) {
		return nil, util.ErrInvalidDifficulty
	}

	tags, err := s.TagRepo.FindByIDs(req.TagIDs)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	question := &model.Question{
		Text:               req.Text,
		AnswerRequirements: req.AnswerRequirements,
		DifficultyLevel:    req.DifficultyLevel,
		PartID:             req.PartID,
		Tags:               tags,
		IsAnswerInBook:     req.IsAnswerInBook,
		IsAnswerInMovie:    req.IsAnswerInMovie,
		IsActive:           isActive,
	}
	for _, a := range req.Answers {
		question.Answers = append(question.Answers, model.Answer{
			Text:        a.Text,
			IsCorrect:   a.IsCorrect,
			Description: a.Description,
		})
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// UpdateQuestion edits the scalar fields and, when answers are given,
// replaces the full option set in one transaction.
func (s *CatalogService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	if req.DifficultyLevel != 0 && !model.ValidDifficulty(req.DifficultyLevel) {
		return nil, util.ErrInvalidDifficulty
	}

	question, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	} else if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		question.Text = req.Text
		question.AnswerRequirements = req.AnswerRequirements
		if req.DifficultyLevel != 0 {
			question.DifficultyLevel = req.DifficultyLevel
		}
		question.PartID = req.PartID
		question.IsAnswerInBook = req.IsAnswerInBook
		question.IsAnswerInMovie = req.IsAnswerInMovie
		if req.IsActive != nil {
			question.IsActive = *req.IsActive
		}

		if err := tx.Omit("Answers", "Tags").Save(question).Error; err != nil {
			return err
		}

		if req.TagIDs != nil {
			tags, err := s.TagRepo.FindByIDs(req.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(question).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if req.Answers != nil {
			answers := make([]model.Answer, 0, len(req.Answers))
			for _, a := range req.Answers {
				answers = append(answers, model.Answer{
					Text:        a.Text,
					IsCorrect:   a.IsCorrect,
					Description: a.Description,
				})
			}
			if err := s.QuestionRepo.ReplaceAnswers(tx, question.ID, answers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.QuestionRepo.FindByID(id)
}

func (s *CatalogService) DeleteQuestion(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	} else if err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

// AttachImage stores the uploaded image URL on the question. Size and MIME
// checks happen in the controller before anything is persisted.
func (s *CatalogService) AttachImage(id uint, imageURL string) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	} else if err != nil {
		return nil, err
	}
	question.Image = imageURL
	if err := s.DB.Model(question).Update("image", imageURL).Error; err != nil {
		return nil, err
	}
	return question, nil
}
