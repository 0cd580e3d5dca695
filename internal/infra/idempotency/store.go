package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "booking:idem:"
	pendingValue = "pending"
)

var (
	// ErrInProgress возвращается, когда запрос с тем же ключом ещё выполняется
	ErrInProgress = errors.New("idempotency: request with this key is in progress")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store хранит соответствие Idempotency-Key -> ID созданного бронирования в redis
// При недоступности redis работает в режиме fail-open: повторы тогда отсекает
// уникальный индекс bookings.request_token
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewStore создает хранилище; nil client отключает дедупликацию в redis
func NewStore(client *redis.Client, ttl time.Duration, logger Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Reserve занимает ключ перед созданием бронирования
// Если бронирование по ключу уже создано, возвращает его ID и acquired=false
func (s *Store) Reserve(ctx context.Context, token string) (bookingID string, acquired bool, err error) {
	if s.client == nil || token == "" {
		return "", true, nil
	}

	key := keyPrefix + token

	ok, err := s.client.SetNX(ctx, key, pendingValue, s.ttl).Result()
	if err != nil {
		s.logger.Warn("Idempotency: redis unavailable on reserve key=%s: %v", token, err)
		return "", true, nil
	}
	if ok {
		return "", true, nil
	}

	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// Ключ истёк между SETNX и GET
		return s.Reserve(ctx, token)
	}
	if err != nil {
		s.logger.Warn("Idempotency: redis unavailable on get key=%s: %v", token, err)
		return "", true, nil
	}

	if value == pendingValue {
		return "", false, ErrInProgress
	}

	return value, false, nil
}

// Complete запоминает ID созданного бронирования
func (s *Store) Complete(ctx context.Context, token, bookingID string) error {
	if s.client == nil || token == "" {
		return nil
	}

	if err := s.client.Set(ctx, keyPrefix+token, bookingID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: complete key=%s: %w", token, err)
	}
	return nil
}

// Release освобождает ключ после неудачной попытки, чтобы повтор мог выполниться
func (s *Store) Release(ctx context.Context, token string) {
	if s.client == nil || token == "" {
		return
	}

	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		s.logger.Warn("Idempotency: failed to release key=%s: %v", token, err)
	}
}
