package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"tnb-api/core/database"
	"tnb-api/modules/booking/entity"
)

func newMockRepo(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "postgres")
	return NewBookingRepository(database.NewFromSQLx(sqlxDB)), mock
}

func bookingRow(id int64, status, paymentStatus string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "client_id", "service_id", "appointment_date", "duration", "status", "payment_status",
		"guest_name", "guest_email", "guest_phone", "client_notes",
		"service_price", "service_fee", "total_price",
		"stripe_checkout_session_id", "stripe_payment_intent_id", "paid_at",
		"created_at", "updated_at",
	}).AddRow(
		id, nil, 1, now, 60, status, paymentStatus,
		"Amy Chen", "amy@example.com", "07700900123", nil,
		30.00, 4.50, 34.50,
		nil, nil, nil,
		now, now,
	)
}

func TestInsertReturnsCreatedBooking(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(
			int64(1), sqlmock.AnyArg(), 60, entity.BookingStatusPending, entity.PaymentStatusPending,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil,
			30.00, 4.50, 34.50,
		).
		WillReturnRows(bookingRow(42, "pending", "pending"))

	name, email, phone := "Amy Chen", "amy@example.com", "07700900123"
	created, err := repo.Insert(context.Background(), &entity.Booking{
		ServiceID:       1,
		AppointmentDate: time.Now(),
		Duration:        60,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		GuestName:       &name,
		GuestEmail:      &email,
		GuestPhone:      &phone,
		ServicePrice:    30.00,
		ServiceFee:      4.50,
		TotalPrice:      34.50,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if created.ID != 42 {
		t.Errorf("created.ID = %d, want 42", created.ID)
	}
	if created.Status != entity.BookingStatusPending {
		t.Errorf("created.Status = %s, want pending", created.Status)
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(bookingRow(42, "confirmed", "paid"))

		booking, err := repo.GetByID(context.Background(), 42)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if booking == nil || booking.ID != 42 || booking.Status != entity.BookingStatusConfirmed {
			t.Errorf("unexpected booking: %+v", booking)
		}
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		booking, err := repo.GetByID(context.Background(), 99)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if booking != nil {
			t.Errorf("expected nil booking for missing row, got %+v", booking)
		}
	})
}

func TestMarkPaid(t *testing.T) {
	repo, mock := newMockRepo(t)
	paidAt := time.Now()

	mock.ExpectExec(`UPDATE bookings\s+SET payment_status = 'paid'`).
		WithArgs(int64(42), "cs_test_123", "pi_123", paidAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkPaid(context.Background(), 42, "cs_test_123", "pi_123", paidAt); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLinkClient(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings\s+SET client_id = \$2`).
		WithArgs(int64(42), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.LinkClient(context.Background(), 42, 5); err != nil {
		t.Fatalf("LinkClient: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE bookings\s+SET status = \$2`).
		WithArgs(int64(42), entity.BookingStatusCancelled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), 42, entity.BookingStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}
