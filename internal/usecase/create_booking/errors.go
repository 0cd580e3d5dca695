package create_booking

import "errors"

var (
	// ErrInvalidServiceType возвращается, когда тип услуги отсутствует в каталоге
	ErrInvalidServiceType = errors.New("create_booking: invalid service type")

	// ErrCleanerNotFound возвращается, когда исполнитель не найден
	ErrCleanerNotFound = errors.New("create_booking: cleaner not found")

	// ErrServiceAreaNotSupported возвращается, когда город не обслуживается
	ErrServiceAreaNotSupported = errors.New("create_booking: service area not supported")

	// ErrInvalidHours возвращается, когда длительность вне диапазона
	ErrInvalidHours = errors.New("create_booking: invalid hours")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrExcludedWeekday возвращается, когда дата выпадает на нерабочий день
	ErrExcludedWeekday = errors.New("create_booking: bookings are not accepted on this weekday")

	// ErrInvalidTimeSlot возвращается, когда слот не из расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот на сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrRequestInProgress возвращается, когда запрос с тем же Idempotency-Key ещё выполняется
	ErrRequestInProgress = errors.New("create_booking: request with this idempotency key is in progress")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
