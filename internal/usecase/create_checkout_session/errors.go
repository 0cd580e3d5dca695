package create_checkout_session

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_checkout_session: booking not found")

	// ErrAlreadyPaid возвращается, когда бронирование уже оплачено
	ErrAlreadyPaid = errors.New("create_checkout_session: booking already paid")

	// ErrBookingCancelled возвращается, когда бронирование отменено клиентом
	ErrBookingCancelled = errors.New("create_checkout_session: booking cancelled")

	// ErrProviderNotConfigured возвращается, когда провайдер оплаты не настроен
	ErrProviderNotConfigured = errors.New("create_checkout_session: payment provider not configured")

	// ErrProvider возвращается, когда провайдер не смог создать сессию
	ErrProvider = errors.New("create_checkout_session: payment provider error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_checkout_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_checkout_session: internal error")
)
