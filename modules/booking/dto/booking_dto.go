package dto

// CheckoutRequest starts the booking/checkout workflow for a set of service
// names picked from the price list.
type CheckoutRequest struct {
	Services        []string `json:"services"`
	AppointmentDate string   `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string   `json:"appointment_time"` // "HH:MM" or "h:MM AM"
	GuestName       string   `json:"guest_name"`
	GuestEmail      string   `json:"guest_email"`
	GuestPhone      string   `json:"guest_phone"`
	ClientNotes     string   `json:"client_notes,omitempty"`
}

// CheckoutResponse carries the pending booking id and the Stripe checkout
// session the client is redirected to.
type CheckoutResponse struct {
	BookingID  int64   `json:"booking_id"`
	SessionID  string  `json:"session_id"`
	SessionURL string  `json:"session_url,omitempty"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Total      float64 `json:"total"`
}
