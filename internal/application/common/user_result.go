package common

import "time"

type UserResult struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// ContactResult is the minimal projection of a user shown next to records they own.
type ContactResult struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
