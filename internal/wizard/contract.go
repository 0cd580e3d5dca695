package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// CatalogAPI источники каталога
type CatalogAPI interface {
	GetServices(ctx context.Context) (map[string]backend.ServiceEntry, error)
	GetCleaners(ctx context.Context) ([]backend.Cleaner, error)
	GetServiceAreas(ctx context.Context) ([]string, error)
}

// StatusAPI получение статуса сессии оплаты
type StatusAPI interface {
	GetCheckoutStatus(ctx context.Context, sessionID string) (*backend.CheckoutStatus, error)
}

// BackendAPI все методы сервера, которые нужны мастеру
type BackendAPI interface {
	CatalogAPI
	StatusAPI
	CreateBooking(ctx context.Context, req backend.CreateBookingRequest, requestToken string) (*backend.CreateBookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*backend.Booking, error)
	CreateCheckoutSession(ctx context.Context, bookingID, originURL string) (*backend.CheckoutSession, error)
}

// Redirector уводит пользователя на страницу оплаты провайдера
type Redirector interface {
	Redirect(ctx context.Context, url string) error
}

// Notifier локальное уведомление об оплаченном бронировании
type Notifier interface {
	Notify(ctx context.Context, booking *backend.Booking) error
}

// Sleeper пауза между попытками опроса, прерываемая контекстом
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// TimerSleeper пауза на таймере
type TimerSleeper struct{}

// Sleep ждёт d или отмены контекста
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
