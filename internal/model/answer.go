package model

// Answer is one option of its owning question. The schema does not force a
// single correct option per question; scoring is per selected option.
type Answer struct {
	BaseModel
	Text        string  `gorm:"type:text;not null" json:"text"`
	QuestionID  uint    `gorm:"index;not null" json:"question_id"`
	IsCorrect   bool    `json:"is_correct"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
