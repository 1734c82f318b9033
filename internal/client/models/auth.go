package models

// Credentials is the body of /auth/register and /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by /auth/login (and optionally /auth/register).
type TokenResponse struct {
	Token string `json:"token"`
}

// Identity is returned by /auth/me.
type Identity struct {
	ID    int64    `json:"id"`
	Roles []string `json:"roles"`
}
