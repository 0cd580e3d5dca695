package catalog

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// CleanerRepository интерфейс репозитория клинеров
type CleanerRepository interface {
	ListAvailable(ctx context.Context) ([]*domain.Cleaner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
