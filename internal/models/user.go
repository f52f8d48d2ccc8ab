package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Principal is the authenticated identity carried by a bearer token.
type Principal struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}
