// Package models holds the persisted entities of credkeeper.
package models

// User is a row of the users table.
//
// PasswordHash holds the argon2id hash and must never leave the
// storage and service layers; use Public for anything handed to callers.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FavoriteColor  *string
	FavoriteAnimal *string
}

// PublicUser is the part of a user that may be returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public strips everything except the identity.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
