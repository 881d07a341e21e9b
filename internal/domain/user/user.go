package user

import "errors"

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never expose hash in JSON
}

var ErrNotFound = errors.New("user not found")
