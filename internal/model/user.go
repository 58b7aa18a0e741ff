package model

import (
	"time"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleEditor UserRole = "editor"
	RoleAdmin  UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"size:20;default:'user';index" json:"role"`
	Avatar    string     `gorm:"size:255" json:"avatar,omitempty"`
	Bio       string     `gorm:"type:text" json:"bio,omitempty"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
}

func (User) TableName() string {
	return "users"
}
