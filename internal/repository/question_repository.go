package repository

import (
	"hp_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionFilter narrows the active-question listing.
type QuestionFilter struct {
	PartID     uint
	TagID      uint
	Difficulty int
}

func (r *QuestionRepository) ListActive(filter QuestionFilter) ([]model.Question, error) {
	query := r.DB.Model(&model.Question{}).Where("questions.is_active = ?", true)
	if filter.PartID > 0 {
		query = query.Where("questions.part_id = ?", filter.PartID)
	}
	if filter.Difficulty > 0 {
		query = query.Where("questions.difficulty_level = ?", filter.Difficulty)
	}
	if filter.TagID > 0 {
		query = query.Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Where("question_tags.tag_id = ?", filter.TagID)
	}

	var questions []model.Question
	err := query.Order("questions.difficulty_level asc, questions.text asc").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindActiveByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("is_active = ?", true).
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.text asc") }).
		Preload("Tags").
		Preload("Part").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("answers.text asc") }).
		Preload("Tags").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// ReplaceAnswers swaps the question's option set. Selections on user answers
// that pointed at the removed options are nulled; their is_correct stays as
// computed at submission time.
func (r *QuestionRepository) ReplaceAnswers(tx *gorm.DB, questionID uint, answers []model.Answer) error {
	if err := nullifySelectionsForQuestion(tx, questionID); err != nil {
		return err
	}
	if err := tx.Where("question_id = ?", questionID).Delete(&model.Answer{}).Error; err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		answers[i].ID = 0
		answers[i].QuestionID = questionID
	}
	return tx.Create(&answers).Error
}

// Delete removes the question together with its answers, tag links and
// collection memberships.
func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := nullifySelectionsForQuestion(tx, id); err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM question_tags WHERE question_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.CollectionQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func nullifySelectionsForQuestion(tx *gorm.DB, questionID uint) error {
	return tx.Exec(
		"UPDATE user_answers SET selected_answer_id = NULL WHERE selected_answer_id IN (SELECT id FROM answers WHERE question_id = ?)",
		questionID,
	).Error
}

func (r *QuestionRepository) AnswersByQuestion(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("question_id = ?", questionID).Order("text asc").Find(&answers).Error
	return answers, err
}
