package user

import (
	"errors"
	"time"
)

// User is a storefront account.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}

var (
	ErrNotFound           = errors.New("user: not found")
	ErrEmailExists        = errors.New("user: email already registered")
	ErrInvalidCredentials = errors.New("user: invalid email or password")
)
