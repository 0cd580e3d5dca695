package stripecheckout

import "errors"

var (
	// ErrNotConfigured возвращается, когда не задан API-ключ
	ErrNotConfigured = errors.New("stripecheckout: api key not configured")

	// ErrSessionNotFound возвращается, когда сессия не найдена у провайдера
	ErrSessionNotFound = errors.New("stripecheckout: session not found")

	// ErrInvalidSignature возвращается при неверной подписи webhook
	ErrInvalidSignature = errors.New("stripecheckout: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда тело webhook не разбирается
	ErrInvalidPayload = errors.New("stripecheckout: invalid webhook payload")

	// ErrProvider возвращается при прочих ошибках Stripe API
	ErrProvider = errors.New("stripecheckout: provider error")
)
