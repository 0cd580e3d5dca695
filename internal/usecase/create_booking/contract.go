package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByRequestToken(ctx context.Context, token string) (*domain.Booking, error)
}

// CleanerRepository интерфейс репозитория исполнителей
type CleanerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Cleaner, error)
}

// IdempotencyStore хранилище ключей повторных запросов
type IdempotencyStore interface {
	Reserve(ctx context.Context, token string) (bookingID string, acquired bool, err error)
	Complete(ctx context.Context, token, bookingID string) error
	Release(ctx context.Context, token string)
}

// Metrics счётчики бизнес-метрик
type Metrics interface {
	IncBookingCreated(serviceType string)
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
