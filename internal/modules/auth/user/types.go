package user

import (
	"errors"
	"time"
)

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterDTO deliberately carries no role field: roles are assigned
// server-side and granted by operators, never by the caller.
type RegisterDTO struct {
	Username    string `json:"username" binding:"required,min=3"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"display_name"`
	Mail        string `json:"mail"`
}

type userResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	DisplayName   string     `json:"display_name"`
	Mail          string     `json:"mail"`
	Roles         []string   `json:"roles"`
	CanSubmit     bool       `json:"can_submit"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user,omitempty"`
}

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errUsernameTaken = errors.New("username already taken")
)
