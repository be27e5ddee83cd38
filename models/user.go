package models

// User is an account stored in the collaborator's /users collection. The
// password field holds the argon2-encoded hash and never leaves the API.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
	FullName string `json:"fullName,omitempty"`
}
