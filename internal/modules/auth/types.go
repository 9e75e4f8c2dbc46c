package auth

import "errors"

var (
	errBadCredentials = errors.New("wrong email or password")
	errEmailTaken     = errors.New("email already registered")
	errUsernameTaken  = errors.New("username already taken")
	errSessionGone    = errors.New("session not found")
)

// SignupDTO is the payload for registering an account.
type SignupDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required,min=2,max=32"`
	FullName string `json:"full_name"`
}

// LoginDTO is the payload for signing in.
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
