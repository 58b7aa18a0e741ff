package repository

import (
	"hp_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.UserCollectionAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) Update(attempt *model.UserCollectionAttempt) error {
	return r.DB.Save(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.UserCollectionAttempt, error) {
	var a model.UserCollectionAttempt
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindOpenByUserAndCollection returns the newest in-progress attempt, if any.
func (r *AttemptRepository) FindOpenByUserAndCollection(userID, collectionID uint) (*model.UserCollectionAttempt, error) {
	var a model.UserCollectionAttempt
	err := r.DB.Where("user_id = ? AND collection_id = ? AND completed_at IS NULL", userID, collectionID).
		Order("attempt_date desc").
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) HasOpenAttempt(userID, collectionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserCollectionAttempt{}).
		Where("user_id = ? AND collection_id = ? AND completed_at IS NULL", userID, collectionID).
		Count(&count).Error
	return count > 0, err
}

func (r *AttemptRepository) AnswersByAttempt(attemptID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) CountAnswers(attemptID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("attempt_id = ?", attemptID).Count(&count).Error
	return count, err
}

func (r *AttemptRepository) CreateResult(result *model.UserCollectionResult) error {
	return r.DB.Create(result).Error
}

func (r *AttemptRepository) ResultByAttempt(attemptID uint) (*model.UserCollectionResult, error) {
	var res model.UserCollectionResult
	if err := r.DB.Where("attempt_id = ?", attemptID).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// LatestResult returns the most recent completed score for the pair, or
// gorm.ErrRecordNotFound when the user never finished the collection.
func (r *AttemptRepository) LatestResult(userID, collectionID uint) (*model.UserCollectionResult, error) {
	var res model.UserCollectionResult
	err := r.DB.Where("user_id = ? AND collection_id = ?", userID, collectionID).
		Order("created_at desc, id desc").
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *AttemptRepository) ResultsByUserAndCollection(userID, collectionID uint) ([]model.UserCollectionResult, error) {
	var results []model.UserCollectionResult
	err := r.DB.Where("user_id = ? AND collection_id = ?", userID, collectionID).
		Order("created_at desc, id desc").
		Find(&results).Error
	return results, err
}
