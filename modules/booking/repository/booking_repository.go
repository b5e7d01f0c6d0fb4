package repository

import (
	"context"
	"database/sql"
	"time"

	"tnb-api/core/database"
	"tnb-api/core/logger"
	"tnb-api/modules/booking/entity"
)

// BookingRepository handles booking database operations
type BookingRepository struct {
	DB database.IDatabase
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{DB: db}
}

// BookingRepositoryInterface defines the repository contract
type BookingRepositoryInterface interface {
	Insert(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
	GetByID(ctx context.Context, id int64) (*entity.Booking, error)
	MarkPaid(ctx context.Context, id int64, sessionID, paymentIntentID string, paidAt time.Time) error
	LinkClient(ctx context.Context, id int64, clientID int64) error
	ListRange(ctx context.Context, from, to time.Time) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error
}

const bookingColumns = `
	id, client_id, service_id, appointment_date, duration, status, payment_status,
	guest_name, guest_email, guest_phone, client_notes,
	service_price, service_fee, total_price,
	stripe_checkout_session_id, stripe_payment_intent_id, paid_at,
	created_at, updated_at`

func (r *BookingRepository) Insert(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	query := `
		INSERT INTO bookings (
			service_id, appointment_date, duration, status, payment_status,
			guest_name, guest_email, guest_phone, client_notes,
			service_price, service_fee, total_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING` + bookingColumns

	var created entity.Booking
	err := r.DB.GetContext(ctx, &created, query,
		booking.ServiceID, booking.AppointmentDate, booking.Duration,
		booking.Status, booking.PaymentStatus,
		booking.GuestName, booking.GuestEmail, booking.GuestPhone, booking.ClientNotes,
		booking.ServicePrice, booking.ServiceFee, booking.TotalPrice)

	if err != nil {
		logger.Error("BookingRepository:Insert", err)
		return nil, err
	}

	return &created, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", "id", id, "error", err)
		return nil, err
	}

	return &booking, nil
}

// MarkPaid records a verified payment: paid + confirmed plus the processor
// identifiers for reconciliation.
func (r *BookingRepository) MarkPaid(ctx context.Context, id int64, sessionID, paymentIntentID string, paidAt time.Time) error {
	query := `
		UPDATE bookings
		SET payment_status = 'paid',
		    status = 'confirmed',
		    stripe_checkout_session_id = $2,
		    stripe_payment_intent_id = $3,
		    paid_at = $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	if err := r.DB.ExecContext(ctx, query, id, sessionID, paymentIntentID, paidAt); err != nil {
		logger.Error("BookingRepository:MarkPaid", "id", id, "error", err)
		return err
	}

	return nil
}

func (r *BookingRepository) LinkClient(ctx context.Context, id int64, clientID int64) error {
	query := `
		UPDATE bookings
		SET client_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	if err := r.DB.ExecContext(ctx, query, id, clientID); err != nil {
		logger.Error("BookingRepository:LinkClient", "id", id, "client_id", clientID, "error", err)
		return err
	}

	return nil
}

func (r *BookingRepository) ListRange(ctx context.Context, from, to time.Time) ([]entity.Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM bookings
		WHERE appointment_date >= $1
		  AND appointment_date <= $2
		ORDER BY appointment_date ASC
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, from, to)
	if err != nil {
		if err == sql.ErrNoRows {
			return []entity.Booking{}, nil
		}
		logger.Error("BookingRepository:ListRange", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	if err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("BookingRepository:UpdateStatus", "id", id, "status", status, "error", err)
		return err
	}

	return nil
}
