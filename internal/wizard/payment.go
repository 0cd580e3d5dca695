package wizard

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// ReturnKind что обнаружено в адресе возврата
type ReturnKind int

const (
	// ReturnNone адрес не содержит параметров возврата с оплаты
	ReturnNone ReturnKind = iota
	// ReturnPayment есть session_id и booking_id
	ReturnPayment
	// ReturnCancelled пользователь отменил оплату на стороне провайдера
	ReturnCancelled
)

// Pay переход с шага оплаты: отправка бронирования, создание сессии оплаты, переход к провайдеру
// Ошибка сессии оплаты не отменяет созданное бронирование; следующий вызов Pay
// переиспользует его и повторяет только создание сессии.
func (w *Wizard) Pay(ctx context.Context) error {
	if err := w.beginFlight(); err != nil {
		return err
	}
	defer w.endFlight()

	submission, err := w.submit(ctx)
	if err != nil {
		return err
	}

	session, err := w.api.CreateCheckoutSession(ctx, submission.BookingID, w.originURL)
	if err != nil {
		w.mu.Lock()
		w.lastError = backend.Detail(err)
		w.mu.Unlock()
		w.logger.Error("Pay: failed to create payment session for booking %s: %v", submission.BookingID, err)
		return fmt.Errorf("%w: %w", ErrPaymentSession, err)
	}

	w.logger.Info("Pay: redirecting to payment session %s for booking %s", session.SessionID, submission.BookingID)
	if err := w.redirector.Redirect(ctx, session.URL); err != nil {
		w.mu.Lock()
		w.lastError = err.Error()
		w.mu.Unlock()
		w.logger.Error("Pay: redirect failed: %v", err)
		return fmt.Errorf("%w: %v", ErrRedirect, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepAwaitingPaymentReturn
	w.sessionID = session.SessionID
	w.bookingID = submission.BookingID
	return nil
}

// ResumeFromURL разбирает адрес возврата с оплаты
// При наличии session_id и booking_id мастер сразу переходит к ожиданию оплаты, независимо от текущего шага.
// Отмена оплаты возвращает мастер на шаг оплаты, если он ждал именно этого возврата.
func (w *Wizard) ResumeFromURL(rawURL string) (ReturnKind, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ReturnNone, fmt.Errorf("%w: invalid return url: %v", ErrNotAllowed, err)
	}
	query := u.Query()

	sessionID := strings.TrimSpace(query.Get("session_id"))
	bookingID := strings.TrimSpace(query.Get("booking_id"))

	w.mu.Lock()
	defer w.mu.Unlock()

	if sessionID != "" && bookingID != "" {
		w.stopPollLocked()
		w.step = StepAwaitingPaymentReturn
		w.sessionID = sessionID
		w.bookingID = bookingID
		w.confirmed = nil
		w.lastError = ""
		w.logger.Info("ResumeFromURL: resuming payment session %s for booking %s", sessionID, bookingID)
		return ReturnPayment, nil
	}

	if query.Get("cancelled") == "true" {
		if w.step == StepAwaitingPaymentReturn && w.pollCancel == nil {
			w.step = StepReviewAndPay
			w.sessionID = ""
		}
		w.logger.Info("ResumeFromURL: payment cancelled by user")
		return ReturnCancelled, nil
	}

	return ReturnNone, nil
}

// AwaitPayment опрашивает статус сессии оплаты до конечного состояния
// Отмена ctx или CancelPolling останавливает опрос, мастер остаётся в ожидании.
// Из TimedOut и PollError можно вызвать повторно: автоматических повторов нет.
func (w *Wizard) AwaitPayment(ctx context.Context) (PollResult, error) {
	w.mu.Lock()
	switch w.step {
	case StepAwaitingPaymentReturn, StepTimedOut, StepPollError:
	default:
		step := w.step
		w.mu.Unlock()
		return PollResult{}, fmt.Errorf("%w: await payment from %s", ErrNotAllowed, step)
	}
	if w.sessionID == "" {
		w.mu.Unlock()
		return PollResult{}, ErrNoPaymentSession
	}
	if w.pollCancel != nil {
		w.mu.Unlock()
		return PollResult{}, fmt.Errorf("%w: polling already running", ErrNotAllowed)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	w.pollCancel = cancel
	w.pollGen++
	gen := w.pollGen
	w.step = StepAwaitingPaymentReturn
	w.lastError = ""
	sessionID := w.sessionID
	w.mu.Unlock()

	result := w.poller.Poll(pollCtx, sessionID)
	cancel()

	w.mu.Lock()
	if w.pollGen != gen {
		// опрос отменён и заменён новым или новым адресом возврата
		w.mu.Unlock()
		return result, nil
	}
	w.pollCancel = nil
	switch result.Outcome {
	case OutcomePaid:
		w.step = StepConfirmed
		w.resetDraftLocked()
	case OutcomeExpired:
		w.step = StepFailed
	case OutcomeTimeout:
		w.step = StepTimedOut
	case OutcomeError:
		w.step = StepPollError
		w.lastError = backend.Detail(result.Err)
	case OutcomeCancelled:
		// состояние не меняется
	}
	bookingID := w.bookingID
	if bookingID == "" && result.Status != nil {
		bookingID = result.Status.BookingID
	}
	w.mu.Unlock()

	if result.Outcome == OutcomePaid {
		w.fetchConfirmed(ctx, bookingID)
	}

	return result, nil
}

// fetchConfirmed получает полное бронирование после оплаты и уведомляет пользователя
// Ошибка получения не отменяет подтверждения оплаты
func (w *Wizard) fetchConfirmed(ctx context.Context, bookingID string) {
	if bookingID == "" {
		w.logger.Warn("AwaitPayment: payment confirmed but booking id is unknown")
		return
	}

	booking, err := w.api.GetBooking(ctx, bookingID)
	if err != nil {
		w.logger.Error("AwaitPayment: failed to fetch booking %s: %v", bookingID, err)
		return
	}

	w.mu.Lock()
	w.confirmed = booking
	w.mu.Unlock()

	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, booking); err != nil {
			w.logger.Warn("AwaitPayment: notification failed: %v", err)
		}
	}
}

// CancelPolling останавливает идущий опрос; false, если опроса нет
func (w *Wizard) CancelPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pollCancel == nil {
		return false
	}
	w.pollCancel()
	w.pollCancel = nil
	w.logger.Info("CancelPolling: polling of session %s cancelled", w.sessionID)
	return true
}

// stopPollLocked отменяет текущий опрос так, что его результат уже не меняет состояние
func (w *Wizard) stopPollLocked() {
	if w.pollCancel != nil {
		w.pollCancel()
		w.pollCancel = nil
	}
	w.pollGen++
}
