package model

// swagger:model Question
type Question struct {
	BaseModel
	Text               string   `gorm:"type:text;not null" json:"text"`
	AnswerRequirements *string  `gorm:"type:text" json:"answer_requirements,omitempty"`
	Image              string   `gorm:"size:255" json:"image,omitempty"`
	DifficultyLevel    int      `gorm:"default:1;index" json:"difficulty_level"`
	PartID             *uint    `gorm:"index" json:"part_id,omitempty"`
	Part               *Part    `gorm:"constraint:OnDelete:SET NULL" json:"part,omitempty"`
	Tags               []Tag    `gorm:"many2many:question_tags" json:"tags,omitempty"`
	IsAnswerInBook     bool     `json:"is_answer_in_book"`
	IsAnswerInMovie    bool     `json:"is_answer_in_movie"`
	// No column default on purpose: a default tag makes gorm drop an explicit
	// false on insert. Creation paths set the value themselves.
	IsActive bool `gorm:"index" json:"is_active"`
	Answers            []Answer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
