package fakecheckout

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// Client тестовый провайдер оплаты для разработки: вместо внешней страницы
// оплаты отдаёт ссылку на /api/checkout/fake/{sessionId} этого же сервиса.
// Не должен включаться в production.
type Client struct {
	publicBaseURL string

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	status     domain.CheckoutStatus
	successURL string
	cancelURL  string
}

// NewClient создает тестовый провайдер
func NewClient(publicBaseURL string) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidBaseURL
	}

	return &Client{
		publicBaseURL: base,
		sessions:      make(map[string]*session),
	}, nil
}

// CreateCheckoutSession регистрирует открытую сессию
func (c *Client) CreateCheckoutSession(_ context.Context, req domain.CheckoutRequest) (*domain.PaymentSession, error) {
	id := "fake_cs_" + uuid.NewString()

	c.mu.Lock()
	c.sessions[id] = &session{
		status: domain.CheckoutStatus{
			SessionID:     id,
			Status:        domain.TransactionOpen,
			PaymentStatus: domain.PaymentUnpaid,
			AmountTotal:   domain.AmountToMinorUnits(req.Amount),
			Currency:      req.Currency,
		},
		successURL: strings.ReplaceAll(req.SuccessURL, "{CHECKOUT_SESSION_ID}", id),
		cancelURL:  req.CancelURL,
	}
	c.mu.Unlock()

	return &domain.PaymentSession{
		SessionID: id,
		URL:       c.publicBaseURL + "/api/checkout/fake/" + id,
	}, nil
}

// GetCheckoutStatus возвращает текущее состояние сессии
func (c *Client) GetCheckoutStatus(_ context.Context, sessionID string) (*domain.CheckoutStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	status := s.status
	return &status, nil
}

// ParseWebhook всегда возвращает ErrWebhooksUnsupported
func (c *Client) ParseWebhook(_ []byte, _ string) (*domain.WebhookEvent, error) {
	return nil, ErrWebhooksUnsupported
}

// Complete отмечает сессию оплаченной и возвращает адрес возврата в приложение
func (c *Client) Complete(sessionID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if s.status.Status == domain.TransactionOpen {
		s.status.Status = domain.TransactionComplete
		s.status.PaymentStatus = domain.PaymentPaid
	}
	return s.successURL, nil
}

// Cancel отменяет открытую сессию и возвращает адрес отмены
func (c *Client) Cancel(sessionID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if s.status.Status == domain.TransactionOpen {
		s.status.Status = domain.TransactionExpired
	}
	return s.cancelURL, nil
}
