package constants

// Booking / availability
const (
	// SlotDurationMinutes is the fixed slot granularity offered to clients.
	SlotDurationMinutes = 60

	// ServiceFeePercent is the platform surcharge applied on top of the
	// summed service price.
	ServiceFeePercent = 0.15

	// SlotDisplayFormat is the 12-hour display format for slot start times.
	SlotDisplayFormat = "3:04 PM"

	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Accounts
const (
	UsernameMaxLength      = 20
	UsernameMaxAttempts    = 5
	UsernameSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	UsernameSuffixLength   = 6

	SessionTokenLength = 64
	SessionTTLDays     = 30
)

// Payments
const (
	DefaultCurrency = "gbp"

	// WebhookDedupTTLHours bounds how long a processed Stripe event id is
	// remembered for replay suppression.
	WebhookDedupTTLHours = 24
)

// Database tuning
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Background workers
const (
	AsynqConcurrency = 5
)
