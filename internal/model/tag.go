package model

type Tag struct {
	BaseModel
	NameSlug
}

func (Tag) TableName() string {
	return "tags"
}
