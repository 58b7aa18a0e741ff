package model

import "time"

// QuestionCollection groups questions into one quiz. Visible to players only
// when active and past its publish date.
type QuestionCollection struct {
	BaseModel
	NameSlug
	Description string    `gorm:"type:text;not null" json:"description"`
	IsActive    bool      `gorm:"default:false;index" json:"is_active"`
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`
}

func (QuestionCollection) TableName() string {
	return "question_collections"
}

// CollectionQuestion links a collection to a question with an explicit
// position. Quiz flow (is_last_question) depends on this order being stable.
// Plain hard-deleted join rows; no soft delete here.
type CollectionQuestion struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	CollectionID uint      `gorm:"uniqueIndex:idx_collection_question;index:idx_collection_position" json:"collection_id"`
	QuestionID   uint      `gorm:"uniqueIndex:idx_collection_question" json:"question_id"`
	Position     int       `gorm:"index:idx_collection_position" json:"position"`
}

func (CollectionQuestion) TableName() string {
	return "collection_questions"
}
