package session

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// AuthAPI методы сервера, которыми пользуется сессия
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*backend.Token, error)
	Register(ctx context.Context, req backend.RegisterRequest) (*backend.Token, error)
	Me(ctx context.Context, token string) (*backend.User, error)
}

// Store хранилище токена между запусками
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
