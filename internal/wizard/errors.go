package wizard

import "errors"

var (
	// ErrStepIncomplete на текущем шаге заполнено не всё, переход не выполняется
	ErrStepIncomplete = errors.New("wizard: step is incomplete")

	// ErrNotAllowed действие недоступно в текущем состоянии
	ErrNotAllowed = errors.New("wizard: action not allowed in current state")

	// ErrUnknownOption выбранного значения нет в загруженном каталоге
	ErrUnknownOption = errors.New("wizard: option is not in the loaded catalog")

	// ErrDateNotBookable дата в прошлом или выпадает на воскресенье
	ErrDateNotBookable = errors.New("wizard: date is not bookable")

	// ErrSlotStarted слот на сегодня уже начался
	ErrSlotStarted = errors.New("wizard: time slot already started")

	// ErrInvalidHours количество часов вне диапазона 1-8
	ErrInvalidHours = errors.New("wizard: hours out of range")

	// ErrInFlight отправка уже выполняется
	ErrInFlight = errors.New("wizard: submission already in flight")

	// ErrDraftChanged черновик изменился, пока шла отправка; ответ отброшен
	ErrDraftChanged = errors.New("wizard: draft changed during submission")

	// ErrSubmission сервер не принял бронирование
	ErrSubmission = errors.New("wizard: booking submission failed")

	// ErrPaymentSession не удалось создать сессию оплаты
	ErrPaymentSession = errors.New("wizard: payment session failed")

	// ErrRedirect не удалось перейти на страницу оплаты
	ErrRedirect = errors.New("wizard: redirect failed")

	// ErrNoPaymentSession нет сессии оплаты, которую можно опрашивать
	ErrNoPaymentSession = errors.New("wizard: no payment session to poll")
)
