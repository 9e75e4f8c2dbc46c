package models

import "time"

// UserModel is an account that can sign in. Public-facing identity lives in
// ProfileModel; this row only carries credentials.
type UserModel struct {
	Base
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"     gorm:"not null"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }
