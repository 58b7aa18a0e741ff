package model

// Part is a part of the story questions can refer to (book one, book two...).
// Deleting a part never deletes its questions; their part_id is nulled.
type Part struct {
	BaseModel
	NameSlug
	SerialNumber uint `gorm:"uniqueIndex;not null" json:"serial_number"`
}

func (Part) TableName() string {
	return "parts"
}
