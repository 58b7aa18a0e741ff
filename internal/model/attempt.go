package model

import "time"

// UserCollectionAttempt is one run of a user through a collection. A user may
// hold any number of attempts per collection; CompletedAt marks the terminal
// state.
type UserCollectionAttempt struct {
	BaseModel
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	CollectionID uint       `gorm:"index;not null" json:"collection_id"`
	AttemptDate  time.Time  `gorm:"not null" json:"attempt_date"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (UserCollectionAttempt) TableName() string {
	return "user_collection_attempts"
}

func (a *UserCollectionAttempt) InProgress() bool {
	return a.CompletedAt == nil
}

// UserAnswer records one answered (or skipped) question inside an attempt.
// SelectedAnswerID is nulled when the chosen answer is deleted; a null
// selection always grades incorrect.
type UserAnswer struct {
	BaseModel
	UserID           uint  `gorm:"index;not null" json:"user_id"`
	QuestionID       uint  `gorm:"uniqueIndex:idx_attempt_question;not null" json:"question_id"`
	SelectedAnswerID *uint `json:"selected_answer_id"`
	IsCorrect        bool  `gorm:"default:false" json:"is_correct"`
	AttemptID        uint  `gorm:"uniqueIndex:idx_attempt_question;not null" json:"attempt_id"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}

// UserCollectionResult is the scored outcome of a completed attempt.
type UserCollectionResult struct {
	BaseModel
	AttemptID    uint `gorm:"uniqueIndex;not null" json:"attempt_id"`
	UserID       uint `gorm:"index;not null" json:"user_id"`
	CollectionID uint `gorm:"index;not null" json:"collection_id"`
	CorrectCount int  `gorm:"not null" json:"correct_count"`
	TotalCount   int  `gorm:"not null" json:"total_count"`
}

func (UserCollectionResult) TableName() string {
	return "user_collection_results"
}
