package controller

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"

	"tnb-api/modules/payment/service"
)

const testWebhookSecret = "whsec_test_secret"

type stubConfirmations struct {
	events []service.CheckoutCompletedEvent
	err    error
}

func (s *stubConfirmations) HandleCheckoutCompleted(ctx context.Context, evt service.CheckoutCompletedEvent) error {
	s.events = append(s.events, evt)
	return s.err
}

type stubDeduper struct {
	seen bool
}

func (s *stubDeduper) AlreadyProcessed(ctx context.Context, eventID string) bool {
	return s.seen
}

// signPayload builds a Stripe-Signature header the way Stripe does:
// v1 = HMAC-SHA256(secret, "<timestamp>.<payload>").
func signPayload(secret string, payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType, sessionID, bookingID string) string {
	return fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": %q,
		"api_version": %q,
		"data": {
			"object": {
				"id": %q,
				"metadata": {"booking_id": %q}
			}
		}
	}`, eventType, stripe.APIVersion, sessionID, bookingID)
}

func postWebhook(t *testing.T, ctrl *WebhookController, payload, sigHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", strings.NewReader(payload))
	if sigHeader != "" {
		req.Header.Set("Stripe-Signature", sigHeader)
	}
	rec := httptest.NewRecorder()

	if err := ctrl.HandleStripeWebhook(e.NewContext(req, rec)); err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	confirmations := &stubConfirmations{}
	ctrl := NewWebhookController(testWebhookSecret, confirmations, nil)

	payload := eventPayload("checkout.session.completed", "cs_123", "42")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage header", "t=123,v1=deadbeef"},
		{"wrong secret", signPayload("whsec_other", []byte(payload))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(t, ctrl, payload, tt.header)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if len(confirmations.events) != 0 {
				t.Errorf("confirmation called despite bad signature")
			}
		})
	}
}

func TestWebhookProcessesCheckoutCompleted(t *testing.T) {
	confirmations := &stubConfirmations{}
	ctrl := NewWebhookController(testWebhookSecret, confirmations, &stubDeduper{})

	payload := eventPayload("checkout.session.completed", "cs_123", "42")
	rec := postWebhook(t, ctrl, payload, signPayload(testWebhookSecret, []byte(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(confirmations.events) != 1 {
		t.Fatalf("confirmation called %d times, want 1", len(confirmations.events))
	}

	evt := confirmations.events[0]
	if evt.EventID != "evt_test_1" || evt.SessionID != "cs_123" || evt.BookingID != "42" {
		t.Errorf("unexpected event: %+v", evt)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	confirmations := &stubConfirmations{}
	ctrl := NewWebhookController(testWebhookSecret, confirmations, nil)

	payload := eventPayload("payment_intent.created", "pi_123", "")
	rec := postWebhook(t, ctrl, payload, signPayload(testWebhookSecret, []byte(payload)))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(confirmations.events) != 0 {
		t.Errorf("confirmation called for ignored event type")
	}
}

func TestWebhookSkipsDuplicateEvents(t *testing.T) {
	confirmations := &stubConfirmations{}
	ctrl := NewWebhookController(testWebhookSecret, confirmations, &stubDeduper{seen: true})

	payload := eventPayload("checkout.session.completed", "cs_123", "42")
	rec := postWebhook(t, ctrl, payload, signPayload(testWebhookSecret, []byte(payload)))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(confirmations.events) != 0 {
		t.Errorf("confirmation called for duplicate event")
	}
}

func TestWebhookAcksEvenWhenProcessingFails(t *testing.T) {
	confirmations := &stubConfirmations{err: fmt.Errorf("db down")}
	ctrl := NewWebhookController(testWebhookSecret, confirmations, nil)

	payload := eventPayload("checkout.session.completed", "cs_123", "42")
	rec := postWebhook(t, ctrl, payload, signPayload(testWebhookSecret, []byte(payload)))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
