package entity

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Booking is a (possibly multi-service) appointment. ServiceID references
// the first matched service; Duration and the price fields cover the whole
// selection. Guest fields are set for bookings made without an account;
// ClientID is filled in when the guest is reconciled to an account on
// payment confirmation.
type Booking struct {
	ID              int64         `db:"id" json:"id"`
	ClientID        *int64        `db:"client_id" json:"client_id,omitempty"`
	ServiceID       int64         `db:"service_id" json:"service_id"`
	AppointmentDate time.Time     `db:"appointment_date" json:"appointment_date"`
	Duration        int           `db:"duration" json:"duration"` // minutes
	Status          BookingStatus `db:"status" json:"status"`
	PaymentStatus   PaymentStatus `db:"payment_status" json:"payment_status"`

	GuestName   *string `db:"guest_name" json:"guest_name,omitempty"`
	GuestEmail  *string `db:"guest_email" json:"guest_email,omitempty"`
	GuestPhone  *string `db:"guest_phone" json:"guest_phone,omitempty"`
	ClientNotes *string `db:"client_notes" json:"client_notes,omitempty"`

	ServicePrice float64 `db:"service_price" json:"service_price"`
	ServiceFee   float64 `db:"service_fee" json:"service_fee"`
	TotalPrice   float64 `db:"total_price" json:"total_price"`

	StripeCheckoutSessionID *string    `db:"stripe_checkout_session_id" json:"stripe_checkout_session_id,omitempty"`
	StripePaymentIntentID   *string    `db:"stripe_payment_intent_id" json:"stripe_payment_intent_id,omitempty"`
	PaidAt                  *time.Time `db:"paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
