package models

import "time"

// User is the persisted record. The password hash travels through the JSON
// document store, so responses must go through Public() instead of
// serializing User directly.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"passwordHash" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the client-visible shape, with credentials stripped.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult pairs the public user record with a signed token.
type AuthResult struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}
