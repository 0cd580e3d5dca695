package fake_checkout

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// FakeProvider тестовый провайдер оплаты
type FakeProvider interface {
	GetCheckoutStatus(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error)
	Complete(sessionID string) (string, error)
	Cancel(sessionID string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
