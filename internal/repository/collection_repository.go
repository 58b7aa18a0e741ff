package repository

import (
	"hp_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CollectionRepository struct {
	DB *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{DB: db}
}

func (r *CollectionRepository) publishedScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ? AND pub_date <= ?", true, time.Now())
}

func (r *CollectionRepository) ListPublished() ([]model.QuestionCollection, error) {
	var collections []model.QuestionCollection
	err := r.publishedScope(r.DB).Order("pub_date desc").Find(&collections).Error
	return collections, err
}

func (r *CollectionRepository) FindPublishedBySlug(slug string) (*model.QuestionCollection, error) {
	var c model.QuestionCollection
	err := r.publishedScope(r.DB).Where("slug = ?", slug).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepository) FindByID(id uint) (*model.QuestionCollection, error) {
	var c model.QuestionCollection
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepository) List(page, limit int) ([]model.QuestionCollection, int64, error) {
	var collections []model.QuestionCollection
	var total int64
	if err := r.DB.Model(&model.QuestionCollection{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("pub_date desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&collections).Error
	return collections, total, err
}

func (r *CollectionRepository) Create(c *model.QuestionCollection) error {
	return r.DB.Create(c).Error
}

func (r *CollectionRepository) Update(c *model.QuestionCollection) error {
	return r.DB.Save(c).Error
}

func (r *CollectionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&model.CollectionQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuestionCollection{}, id).Error
	})
}

// QuestionsInOrder returns the collection's active questions with their
// answers, ordered by stored position.
func (r *CollectionRepository) QuestionsInOrder(collectionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN collection_questions ON collection_questions.question_id = questions.id").
		Where("collection_questions.collection_id = ?", collectionID).
		Where("questions.is_active = ?", true).
		Order("collection_questions.position asc").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.text asc") }).
		Find(&questions).Error
	return questions, err
}

func (r *CollectionRepository) QuestionCount(collectionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CollectionQuestion{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}

func (r *CollectionRepository) QuestionCounts(collectionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return counts, nil
	}
	rows := []struct {
		CollectionID uint
		N            int64
	}{}
	err := r.DB.Model(&model.CollectionQuestion{}).
		Select("collection_id, count(*) as n").
		Where("collection_id IN ?", collectionIDs).
		Group("collection_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CollectionID] = row.N
	}
	return counts, nil
}

func (r *CollectionRepository) ContainsQuestion(collectionID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CollectionQuestion{}).
		Where("collection_id = ? AND question_id = ?", collectionID, questionID).
		Count(&count).Error
	return count > 0, err
}

// SetQuestions replaces the collection's question list; positions follow the
// order of questionIDs.
func (r *CollectionRepository) SetQuestions(collectionID uint, questionIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("collection_id = ?", collectionID).
			Delete(&model.CollectionQuestion{}).Error; err != nil {
			return err
		}
		if len(questionIDs) == 0 {
			return nil
		}
		links := make([]model.CollectionQuestion, 0, len(questionIDs))
		for i, qid := range questionIDs {
			links = append(links, model.CollectionQuestion{
				CollectionID: collectionID,
				QuestionID:   qid,
				Position:     i + 1,
			})
		}
		return tx.Create(&links).Error
	})
}
