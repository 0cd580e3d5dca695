package wizard

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// Submit отправляет черновик на сервер
// Повторный вызов с неизменённым черновиком возвращает уже созданное бронирование без запроса.
// Пока отправка выполняется, CanSubmit возвращает false, а повторный вызов - ErrInFlight.
func (w *Wizard) Submit(ctx context.Context) (*Submission, error) {
	if err := w.beginFlight(); err != nil {
		return nil, err
	}
	defer w.endFlight()

	return w.submit(ctx)
}

// beginFlight проверяет готовность шага оплаты и ставит флаг отправки
func (w *Wizard) beginFlight() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return ErrInFlight
	}
	if w.step != StepReviewAndPay {
		return fmt.Errorf("%w: submit from %s", ErrNotAllowed, w.step)
	}
	if !w.ready(StepReviewAndPay) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.step)
	}

	w.inFlight = true
	w.lastError = ""
	return nil
}

func (w *Wizard) endFlight() {
	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()
}

// submit создает бронирование, если для текущего черновика его ещё нет
// Вызывается только при поднятом флаге отправки
func (w *Wizard) submit(ctx context.Context) (*Submission, error) {
	w.mu.Lock()
	if w.submission != nil && w.submission.RequestToken == w.draft.RequestToken {
		s := *w.submission
		w.mu.Unlock()
		return &s, nil
	}
	draft := w.draft
	w.mu.Unlock()

	req := draft.toRequest()
	w.logger.Info("SubmitBooking: service=%s, cleaner=%s, date=%s, time=%s, hours=%d, token=%s",
		req.ServiceType, req.CleanerID, req.Date, req.Time, req.Hours, draft.RequestToken)

	resp, err := w.api.CreateBooking(ctx, req, draft.RequestToken)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.lastError = backend.Detail(err)
		w.logger.Warn("SubmitBooking: rejected: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrSubmission, err)
	}

	if w.draft.RequestToken != draft.RequestToken {
		w.logger.Warn("SubmitBooking: draft changed while booking %s was created, discarding it", resp.BookingID)
		return nil, ErrDraftChanged
	}

	w.submission = &Submission{
		BookingID:    resp.BookingID,
		TotalAmount:  resp.TotalAmount,
		RequestToken: draft.RequestToken,
	}
	if resp.Replayed {
		w.logger.Info("SubmitBooking: booking %s returned for repeated request", resp.BookingID)
	} else {
		w.logger.Info("SubmitBooking: booking %s created, total=%.2f", resp.BookingID, resp.TotalAmount)
	}

	s := *w.submission
	return &s, nil
}
