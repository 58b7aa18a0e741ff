package repository

import (
	"hp_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type PartRepository struct {
	DB *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{DB: db}
}

func (r *PartRepository) FindAll() ([]model.Part, error) {
	var parts []model.Part
	err := r.DB.Order("serial_number asc").Find(&parts).Error
	return parts, err
}

func (r *PartRepository) FindByID(id uint) (*model.Part, error) {
	var p model.Part
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartRepository) FindBySlug(slug string) (*model.Part, error) {
	var p model.Part
	if err := r.DB.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartRepository) Create(part *model.Part) error {
	return r.DB.Create(part).Error
}

func (r *PartRepository) Update(part *model.Part) error {
	return r.DB.Save(part).Error
}

// Delete nulls part_id on referencing questions before removing the part, so
// questions survive the deletion.
func (r *PartRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Question{}).
			Where("part_id = ?", id).
			Update("part_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Part{}, id).Error
	})
}
