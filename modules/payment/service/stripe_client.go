package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"tnb-api/core/config"
	"tnb-api/core/constants"
	"tnb-api/core/logger"
)

// LineItem is one checkout line (a matched service or the platform fee).
type LineItem struct {
	Name        string
	Description string
	AmountPence int64
}

// CheckoutSessionInput describes the session to create for a pending booking.
type CheckoutSessionInput struct {
	BookingID     int64
	CustomerEmail string
	LineItems     []LineItem
}

// CheckoutSession is the processor-side session handle.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutClient abstracts the payment processor's checkout-session call so
// the booking workflow can be tested without the network.
type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
}

// StripeClient implements CheckoutClient against the Stripe API.
type StripeClient struct {
	currency string
	baseURL  string
}

func NewStripeClient(cfg config.StripeConfig, baseURL string) *StripeClient {
	stripe.Key = cfg.SecretKey

	currency := cfg.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	return &StripeClient{
		currency: currency,
		baseURL:  baseURL,
	}
}

// CreateCheckoutSession creates a one-off card payment session. The booking
// id travels in session metadata so the webhook can correlate the payment.
func (sc *StripeClient) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(sc.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(li.Name),
					Description: stripe.String(li.Description),
				},
				UnitAmount: stripe.Int64(li.AmountPence),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		CustomerEmail:      stripe.String(in.CustomerEmail),
		SuccessURL: stripe.String(fmt.Sprintf(
			"%s/booking-success?session_id={CHECKOUT_SESSION_ID}&booking_id=%d", sc.baseURL, in.BookingID)),
		CancelURL: stripe.String(sc.baseURL + "/?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", strconv.FormatInt(in.BookingID, 10))
	params.SetIdempotencyKey(uuid.NewString())

	sess, err := session.New(params)
	if err != nil {
		logger.Error("StripeClient:CreateCheckoutSession", "booking_id", in.BookingID, "error", err)
		return nil, err
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
