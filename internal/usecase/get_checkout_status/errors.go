package get_checkout_status

import "errors"

var (
	// ErrSessionNotFound возвращается, когда транзакция по сессии не найдена
	ErrSessionNotFound = errors.New("get_checkout_status: payment session not found")

	// ErrProviderNotConfigured возвращается, когда провайдер оплаты не настроен
	ErrProviderNotConfigured = errors.New("get_checkout_status: payment provider not configured")

	// ErrProvider возвращается, когда провайдер не ответил
	ErrProvider = errors.New("get_checkout_status: payment provider error")

	// ErrInvalidWebhook возвращается при неверной подписи или теле webhook
	ErrInvalidWebhook = errors.New("get_checkout_status: invalid webhook")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_checkout_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_checkout_status: internal error")
)
