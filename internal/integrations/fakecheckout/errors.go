package fakecheckout

import "errors"

var (
	// ErrInvalidBaseURL возвращается, когда публичный адрес сервиса не абсолютный http(s) URL
	ErrInvalidBaseURL = errors.New("fakecheckout: public base url must be an absolute http(s) url")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("fakecheckout: session not found")

	// ErrWebhooksUnsupported возвращается на любой webhook: тестовый провайдер их не шлёт
	ErrWebhooksUnsupported = errors.New("fakecheckout: webhooks are not supported")
)
