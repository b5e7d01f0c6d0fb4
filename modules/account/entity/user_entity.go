package entity

import "time"

// UserType distinguishes salon clients from the tech operating the site.
type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeTech   UserType = "tech"
)

// User is an account record. Accounts created from guest bookings have no
// password until the user sets one.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	UserType     UserType  `db:"user_type" json:"user_type"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Session is a login token created after a successful booking so the guest
// lands signed in.
type Session struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
