package repository

import (
	"hp_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	DB *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) FindAll() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.DB.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindByIDs(ids []uint) ([]model.Tag, error) {
	var tags []model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepository) FindBySlug(slug string) (*model.Tag, error) {
	var t model.Tag
	if err := r.DB.Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) Create(tag *model.Tag) error {
	return r.DB.Create(tag).Error
}

func (r *TagRepository) Update(tag *model.Tag) error {
	return r.DB.Save(tag).Error
}

func (r *TagRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM question_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}
