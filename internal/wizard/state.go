package wizard

// Step состояние мастера бронирования
type Step int

const (
	StepSelectService Step = iota
	StepSelectCleaner
	StepScheduleAndDetails
	StepReviewAndPay
	StepAwaitingPaymentReturn
	StepConfirmed
	StepFailed
	// StepTimedOut статус оплаты не определился за отведённое число попыток
	StepTimedOut
	// StepPollError сетевая ошибка или ошибка разбора при опросе
	StepPollError
)

var stepNames = map[Step]string{
	StepSelectService:         "select_service",
	StepSelectCleaner:         "select_cleaner",
	StepScheduleAndDetails:    "schedule_and_details",
	StepReviewAndPay:          "review_and_pay",
	StepAwaitingPaymentReturn: "awaiting_payment_return",
	StepConfirmed:             "confirmed",
	StepFailed:                "failed",
	StepTimedOut:              "timed_out",
	StepPollError:             "poll_error",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal конечное состояние опроса оплаты
func (s Step) IsTerminal() bool {
	switch s {
	case StepConfirmed, StepFailed, StepTimedOut, StepPollError:
		return true
	default:
		return false
	}
}

// editable черновик можно менять только до ухода на страницу оплаты
func (s Step) editable() bool {
	return s <= StepReviewAndPay || s == StepFailed
}

// Message текст для пользователя по конечному состоянию
func (s Step) Message() string {
	switch s {
	case StepConfirmed:
		return "Payment successful! Your booking is confirmed."
	case StepFailed:
		return "Payment session expired. Please try again."
	case StepTimedOut:
		return "Payment status check timed out. Please check your email for confirmation."
	case StepPollError:
		return "Error checking payment status. Please try again."
	default:
		return ""
	}
}
