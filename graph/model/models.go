package model

import "github.com/basit/tasklist-backend/models"

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Avatar   *string
}

type SignInInput struct {
	Email    string
	Password string
}

// AuthUser is the session handed back by signUp and signIn. User is built
// with models.User.Public and never carries the password hash.
type AuthUser struct {
	User  *models.User
	Token string
}
