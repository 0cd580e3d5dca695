package get_checkout_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// PaymentRepository интерфейс репозитория платёжных транзакций
type PaymentRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*domain.PaymentTransaction, error)
	UpdateStatus(ctx context.Context, sessionID string, status domain.TransactionStatus, paymentStatus domain.PaymentStatus, updatedAt time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	MarkPaid(ctx context.Context, id string, confirmedAt time.Time) (bool, error)
}

// PaymentProvider внешний провайдер оплаты
type PaymentProvider interface {
	GetCheckoutStatus(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error)
	ParseWebhook(payload []byte, signature string) (*domain.WebhookEvent, error)
}

// TxManager менеджер транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчики бизнес-событий
type Metrics interface {
	IncPaymentResolved(paymentStatus string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
