package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 10
)

// Outcome результат опроса статуса оплаты
type Outcome string

const (
	OutcomePaid      Outcome = "paid"
	OutcomeExpired   Outcome = "expired"
	OutcomeTimeout   Outcome = "timeout"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
)

// PollResult итог опроса
type PollResult struct {
	Outcome  Outcome
	Status   *backend.CheckoutStatus // последний полученный статус
	Attempts int                     // выполненные запросы статуса
	Err      error                   // для OutcomeError и OutcomeCancelled
}

// Poller последовательный опрос статуса с фиксированным интервалом и числом попыток
// Следующий запрос уходит только после обработки предыдущего.
type Poller struct {
	api         StatusAPI
	sleeper     Sleeper
	interval    time.Duration
	maxAttempts int
	log         Logger
}

// NewPoller создает опрос; нулевые interval и maxAttempts заменяются значениями по умолчанию
func NewPoller(api StatusAPI, sleeper Sleeper, interval time.Duration, maxAttempts int, log Logger) *Poller {
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultPollAttempts
	}
	return &Poller{
		api:         api,
		sleeper:     sleeper,
		interval:    interval,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Poll опрашивает статус сессии до paid, expired, исчерпания попыток, ошибки или отмены ctx
// Ошибка запроса завершает опрос без повтора.
func (p *Poller) Poll(ctx context.Context, sessionID string) PollResult {
	var last *backend.CheckoutStatus

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			p.log.Info("PollPayment: session=%s cancelled after %d attempts", sessionID, attempt)
			return PollResult{Outcome: OutcomeCancelled, Status: last, Attempts: attempt, Err: err}
		}

		status, err := p.api.GetCheckoutStatus(ctx, sessionID)
		if err != nil {
			if ctx.Err() != nil {
				p.log.Info("PollPayment: session=%s cancelled during attempt %d", sessionID, attempt+1)
				return PollResult{Outcome: OutcomeCancelled, Status: last, Attempts: attempt + 1, Err: ctx.Err()}
			}
			p.log.Error("PollPayment: session=%s attempt %d failed: %v", sessionID, attempt+1, err)
			return PollResult{Outcome: OutcomeError, Status: last, Attempts: attempt + 1, Err: err}
		}
		last = status

		if status.IsPaid() {
			p.log.Info("PollPayment: session=%s paid after %d attempts", sessionID, attempt+1)
			return PollResult{Outcome: OutcomePaid, Status: status, Attempts: attempt + 1}
		}
		if status.IsExpired() {
			p.log.Warn("PollPayment: session=%s expired", sessionID)
			return PollResult{Outcome: OutcomeExpired, Status: status, Attempts: attempt + 1}
		}

		if err := p.sleeper.Sleep(ctx, p.interval); err != nil {
			p.log.Info("PollPayment: session=%s cancelled while waiting", sessionID)
			return PollResult{Outcome: OutcomeCancelled, Status: last, Attempts: attempt + 1, Err: err}
		}
	}

	p.log.Warn("PollPayment: session=%s not resolved after %d attempts", sessionID, p.maxAttempts)
	return PollResult{Outcome: OutcomeTimeout, Status: last, Attempts: p.maxAttempts}
}
