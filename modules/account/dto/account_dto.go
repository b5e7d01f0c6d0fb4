package dto

// BookingAccount is the result of the create-or-get operation keyed by
// guest email.
type BookingAccount struct {
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	IsNewAccount bool   `json:"is_new_account"`
}

// BookingSessionRequest asks for a login session tied to a paid booking.
type BookingSessionRequest struct {
	BookingID int64 `json:"booking_id"`
}

// SessionResponse describes the signed-in user.
type SessionResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
}
