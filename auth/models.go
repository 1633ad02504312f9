package auth

import "time"

// User is a registered portal account persisted under the users document.
type User struct {
	Username     string    `json:"username"`
	FullName     string    `json:"fullName,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CurrentUser is the session record written under the "user" document on
// login and removed on logout. Profile and header views read it.
type CurrentUser struct {
	Username string `json:"username"`
}

// RegisterRequest contains account registration data supplied by callers.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
