package service

import (
	"context"
	"strconv"
	"time"

	"tnb-api/core/logger"
	"tnb-api/core/metrics"
	accountsvc "tnb-api/modules/account/service"
	"tnb-api/modules/booking/entity"
	bookingrepo "tnb-api/modules/booking/repository"
	notifsvc "tnb-api/modules/notification/service"
	"tnb-api/modules/notification/tasks"
)

// CheckoutCompletedEvent is the distilled "checkout.session.completed"
// notification after signature verification.
type CheckoutCompletedEvent struct {
	EventID         string
	SessionID       string
	PaymentIntentID string
	BookingID       string // metadata value, may be empty
}

type ConfirmationService interface {
	HandleCheckoutCompleted(ctx context.Context, evt CheckoutCompletedEvent) error
}

type confirmationService struct {
	bookings bookingrepo.BookingRepositoryInterface
	accounts accountsvc.AccountService
	notifier notifsvc.Enqueuer
}

func NewConfirmationService(
	bookings bookingrepo.BookingRepositoryInterface,
	accounts accountsvc.AccountService,
	notifier notifsvc.Enqueuer,
) ConfirmationService {
	return &confirmationService{
		bookings: bookings,
		accounts: accounts,
		notifier: notifier,
	}
}

// HandleCheckoutCompleted marks the referenced booking paid and confirmed,
// then reconciles the guest to an account. Marking the payment is the
// primary effect; account linking and the confirmation email are
// best-effort and never fail the confirmation.
func (s *confirmationService) HandleCheckoutCompleted(ctx context.Context, evt CheckoutCompletedEvent) error {
	if evt.BookingID == "" {
		logger.Warn("ConfirmationService:HandleCheckoutCompleted:NoBookingID", "event_id", evt.EventID)
		return nil
	}

	bookingID, err := strconv.ParseInt(evt.BookingID, 10, 64)
	if err != nil {
		logger.Warn("ConfirmationService:HandleCheckoutCompleted:BadBookingID",
			"event_id", evt.EventID, "booking_id", evt.BookingID)
		return nil
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error("ConfirmationService:HandleCheckoutCompleted:GetByID", "booking_id", bookingID, "error", err)
		return err
	}

	if booking == nil {
		// A notification may reference a booking this store never held.
		logger.Warn("ConfirmationService:HandleCheckoutCompleted:UnknownBooking", "booking_id", bookingID)
		return nil
	}

	if booking.PaymentStatus == entity.PaymentStatusPaid {
		logger.Info("ConfirmationService:HandleCheckoutCompleted:AlreadyPaid", "booking_id", bookingID)
		return nil
	}

	paidAt := time.Now()
	if err := s.bookings.MarkPaid(ctx, bookingID, evt.SessionID, evt.PaymentIntentID, paidAt); err != nil {
		logger.Error("ConfirmationService:HandleCheckoutCompleted:MarkPaid", "booking_id", bookingID, "error", err)
		return err
	}

	metrics.IncPaymentConfirmed()
	logger.Info("ConfirmationService:HandleCheckoutCompleted:PaymentConfirmed",
		"booking_id", bookingID,
		"session_id", evt.SessionID,
	)

	s.reconcileAccount(ctx, booking)
	s.sendConfirmation(ctx, booking)

	return nil
}

// reconcileAccount creates or fetches the account for the guest email and
// links the booking to it. Idempotent by email.
func (s *confirmationService) reconcileAccount(ctx context.Context, booking *entity.Booking) {
	if booking.GuestEmail == nil || *booking.GuestEmail == "" ||
		booking.GuestName == nil || *booking.GuestName == "" {
		return
	}

	account, appErr := s.accounts.CreateOrGet(ctx, *booking.GuestEmail, *booking.GuestName)
	if appErr != nil {
		logger.Error("ConfirmationService:reconcileAccount:CreateOrGet",
			"booking_id", booking.ID,
			"guest_email", *booking.GuestEmail,
			"error", appErr,
		)
		return
	}

	if err := s.bookings.LinkClient(ctx, booking.ID, account.UserID); err != nil {
		logger.Error("ConfirmationService:reconcileAccount:LinkClient",
			"booking_id", booking.ID,
			"user_id", account.UserID,
			"error", err,
		)
	}
}

func (s *confirmationService) sendConfirmation(ctx context.Context, booking *entity.Booking) {
	if s.notifier == nil || booking.GuestEmail == nil || *booking.GuestEmail == "" {
		return
	}

	payload := tasks.BookingConfirmationPayload{
		BookingID:       booking.ID,
		GuestEmail:      *booking.GuestEmail,
		AppointmentDate: booking.AppointmentDate,
		TotalPrice:      booking.TotalPrice,
	}
	if booking.GuestName != nil {
		payload.GuestName = *booking.GuestName
	}

	if err := s.notifier.EnqueueBookingConfirmation(ctx, payload); err != nil {
		logger.Error("ConfirmationService:sendConfirmation", "booking_id", booking.ID, "error", err)
	}
}
