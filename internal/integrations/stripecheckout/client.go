package stripecheckout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client провайдер оплаты на базе Stripe Checkout
type Client struct {
	api           *client.API
	webhookSecret string
	logger        Logger
}

// NewClient создает клиент Stripe; backends == nil означает продовые эндпоинты
func NewClient(apiKey, webhookSecret string, backends *stripe.Backends, logger Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	return &Client{
		api:           client.New(apiKey, backends),
		webhookSecret: webhookSecret,
		logger:        logger,
	}, nil
}

// CreateCheckoutSession создает checkout-сессию на одну позицию с суммой бронирования
func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(domain.AmountToMinorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Error("Stripe: failed to create checkout session for booking=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: create session: %v", ErrProvider, err)
	}

	c.logger.Info("Stripe: checkout session created: session=%s, booking=%s", session.ID, req.BookingID)

	return &domain.PaymentSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}

// GetCheckoutStatus получает состояние сессии
func (c *Client) GetCheckoutStatus(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: get session %s: %v", ErrProvider, sessionID, err)
	}

	return toCheckoutStatus(session), nil
}

// ParseWebhook проверяет подпись и разбирает событие checkout-сессии
// События других типов возвращаются с пустым SessionID
func (c *Client) ParseWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &domain.WebhookEvent{Type: string(event.Type)}

	if !isCheckoutSessionEvent(result.Type) {
		return result, nil
	}

	var session stripe.CheckoutSession
	if event.Data == nil {
		return nil, fmt.Errorf("%w: empty event data", ErrInvalidPayload)
	}
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result.SessionID = session.ID
	result.PaymentStatus = domain.PaymentStatus(session.PaymentStatus)
	return result, nil
}

func isCheckoutSessionEvent(eventType string) bool {
	switch eventType {
	case domain.EventCheckoutCompleted,
		"checkout.session.async_payment_succeeded",
		"checkout.session.expired":
		return true
	}
	return false
}

func toCheckoutStatus(s *stripe.CheckoutSession) *domain.CheckoutStatus {
	return &domain.CheckoutStatus{
		SessionID:     s.ID,
		Status:        domain.TransactionStatus(s.Status),
		PaymentStatus: domain.PaymentStatus(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
}
