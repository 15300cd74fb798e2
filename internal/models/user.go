package models

import "time"

// Role labels assigned to users. Matching is case-sensitive and exact.
const (
	RoleAdministrator = "administrator"
	RoleAuthor        = "author"
	RoleSubscriber    = "subscriber"
)

// UserModel represents a site member who can sign in and, given the right
// roles, submit content through the front-end form.
type UserModel struct {
	Base
	Username      string      `json:"username"        gorm:"uniqueIndex;not null"`
	DisplayName   string      `json:"display_name"`
	Password      string      `json:"-"               gorm:"not null"`
	Mail          string      `json:"mail"`
	Roles         StringArray `json:"roles"           gorm:"type:json"`
	LastLoginTime *time.Time  `json:"last_login_time"`
	LastLoginIP   string      `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }

// UserSession tracks signed-in JWT sessions for device/session management.
type UserSession struct {
	Base
	UserID    string     `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (UserSession) TableName() string { return "user_sessions" }
