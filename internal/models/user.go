package models

import "time"

// AdminUsername is the account allowed to register new users.
const AdminUsername = "admin"

// User represents an authenticated account with optional TOTP enrollment.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the account may manage other users.
func (u *User) IsAdmin() bool {
	return u.Username == AdminUsername
}
