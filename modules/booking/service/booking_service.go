package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tnb-api/core/constants"
	"tnb-api/core/errors"
	"tnb-api/core/logger"
	"tnb-api/core/metrics"
	"tnb-api/modules/booking/dto"
	"tnb-api/modules/booking/entity"
	"tnb-api/modules/booking/repository"
	catalogrepo "tnb-api/modules/catalog/repository"
	paymentsvc "tnb-api/modules/payment/service"
)

type BookingService interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError)
}

type bookingService struct {
	services catalogrepo.ServiceRepositoryInterface
	bookings repository.BookingRepositoryInterface
	checkout paymentsvc.CheckoutClient
}

func NewBookingService(
	services catalogrepo.ServiceRepositoryInterface,
	bookings repository.BookingRepositoryInterface,
	checkout paymentsvc.CheckoutClient,
) BookingService {
	return &bookingService{
		services: services,
		bookings: bookings,
		checkout: checkout,
	}
}

// Checkout validates the selection, persists a pending booking and opens a
// Stripe checkout session for it. A processor failure after the insert
// leaves the booking pending/unpaid; there is no compensating delete.
func (s *bookingService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
	if appErr := validateCheckoutRequest(req); appErr != nil {
		return nil, appErr
	}

	appointmentAt, err := parseAppointment(req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	matched, err := s.services.FindActiveByNames(ctx, req.Services)
	if err != nil {
		logger.Error("BookingService:Checkout:FindActiveByNames", "services", req.Services, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to resolve services", err)
	}

	if len(matched) == 0 {
		logger.Warn("BookingService:Checkout:NoServicesMatched", "services", req.Services)
		return nil, errors.NewAppError(errors.ErrNotFound, "no valid services found", nil)
	}

	quote := QuoteServices(matched)

	booking := &entity.Booking{
		ServiceID:       matched[0].ID,
		AppointmentDate: appointmentAt,
		Duration:        quote.Duration,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		GuestName:       &req.GuestName,
		GuestEmail:      &req.GuestEmail,
		GuestPhone:      &req.GuestPhone,
		ServicePrice:    quote.Subtotal,
		ServiceFee:      quote.Fee,
		TotalPrice:      quote.Total,
	}
	if req.ClientNotes != "" {
		booking.ClientNotes = &req.ClientNotes
	}

	created, err := s.bookings.Insert(ctx, booking)
	if err != nil {
		logger.Error("BookingService:Checkout:Insert", "guest_email", req.GuestEmail, "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create booking", err)
	}

	metrics.IncBookingCreated(string(entity.BookingStatusPending))
	logger.Info("BookingService:Checkout:BookingCreated",
		"booking_id", created.ID,
		"guest_email", req.GuestEmail,
		"total", quote.Total,
	)

	appointmentDesc := fmt.Sprintf("Appointment on %s at %s", req.AppointmentDate, req.AppointmentTime)
	lineItems := make([]paymentsvc.LineItem, 0, len(matched)+1)
	for _, svc := range matched {
		lineItems = append(lineItems, paymentsvc.LineItem{
			Name:        svc.Name,
			Description: appointmentDesc,
			AmountPence: Pence(svc.Price),
		})
	}
	lineItems = append(lineItems, paymentsvc.LineItem{
		Name:        "Service Fee",
		Description: "Platform service fee (15%)",
		AmountPence: Pence(quote.Fee),
	})

	sess, err := s.checkout.CreateCheckoutSession(ctx, paymentsvc.CheckoutSessionInput{
		BookingID:     created.ID,
		CustomerEmail: req.GuestEmail,
		LineItems:     lineItems,
	})
	if err != nil {
		// The pending row stays behind for manual reconciliation.
		logger.Error("BookingService:Checkout:CreateCheckoutSession",
			"booking_id", created.ID,
			"guest_email", req.GuestEmail,
			"error", err,
		)
		return nil, errors.NewAppError(errors.ErrUpstream, "failed to create checkout session", err)
	}

	return &dto.CheckoutResponse{
		BookingID:  created.ID,
		SessionID:  sess.ID,
		SessionURL: sess.URL,
		Subtotal:   quote.Subtotal,
		ServiceFee: quote.Fee,
		Total:      quote.Total,
	}, nil
}

func validateCheckoutRequest(req *dto.CheckoutRequest) *errors.AppError {
	switch {
	case len(req.Services) == 0:
		return errors.NewAppError(errors.ErrInvalidInput, "services are required", nil)
	case strings.TrimSpace(req.AppointmentDate) == "":
		return errors.NewAppError(errors.ErrInvalidInput, "appointment_date is required", nil)
	case strings.TrimSpace(req.AppointmentTime) == "":
		return errors.NewAppError(errors.ErrInvalidInput, "appointment_time is required", nil)
	case strings.TrimSpace(req.GuestName) == "":
		return errors.NewAppError(errors.ErrInvalidInput, "guest_name is required", nil)
	case strings.TrimSpace(req.GuestEmail) == "":
		return errors.NewAppError(errors.ErrInvalidInput, "guest_email is required", nil)
	case strings.TrimSpace(req.GuestPhone) == "":
		return errors.NewAppError(errors.ErrInvalidInput, "guest_phone is required", nil)
	}
	return nil
}

// parseAppointment combines a YYYY-MM-DD date with either a 24-hour "15:04"
// or a 12-hour "3:04 PM" time.
func parseAppointment(dateStr, timeStr string) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment_date must be formatted YYYY-MM-DD")
	}

	timeStr = strings.TrimSpace(timeStr)
	var clock time.Time
	if strings.Contains(strings.ToUpper(timeStr), "M") {
		clock, err = time.Parse(constants.SlotDisplayFormat, strings.ToUpper(timeStr))
	} else {
		clock, err = time.Parse(constants.TimeFormat, timeStr)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment_time must be formatted HH:MM or h:MM AM")
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location()), nil
}
