package models

import "time"

// ProfileModel is the public identity attached to a user. The primary key is
// the owning user's ID, one row per account, created at signup.
type ProfileModel struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username"   gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"        gorm:"type:text"`
	Website   string    `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProfileModel) TableName() string { return "profiles" }
