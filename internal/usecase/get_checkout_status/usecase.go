package get_checkout_status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	paymentRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/payment"
)

// UseCase use case опроса статуса оплаты и обработки webhook провайдера
type UseCase struct {
	paymentRepo  PaymentRepository
	bookingRepo  BookingRepository
	provider     PaymentProvider
	txManager    TxManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	provider PaymentProvider,
	txManager TxManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		bookingRepo:  bookingRepo,
		provider:     provider,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute запрашивает у провайдера состояние сессии и сохраняет его
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	tx, err := uc.paymentRepo.GetBySessionID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrTransactionNotFound) {
			uc.logger.Warn("GetCheckoutStatus: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("GetCheckoutStatus: failed to get transaction session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get transaction: %v", ErrInternal, err)
	}

	if uc.provider == nil {
		uc.logger.Error("GetCheckoutStatus: payment provider not configured")
		return nil, ErrProviderNotConfigured
	}

	status, err := uc.provider.GetCheckoutStatus(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("GetCheckoutStatus: provider failed for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if err := uc.settle(ctx, tx, status.Status, status.PaymentStatus); err != nil {
		return nil, err
	}

	return &Response{
		Status:        string(status.Status),
		PaymentStatus: string(status.PaymentStatus),
		AmountTotal:   status.AmountTotal,
		Currency:      status.Currency,
		BookingID:     tx.BookingID,
	}, nil
}

// HandleWebhook проверяет подпись события и отмечает оплату
// Неизвестные события и сессии пропускаются без ошибки, чтобы провайдер не повторял доставку
func (uc *UseCase) HandleWebhook(ctx context.Context, req *WebhookRequest) error {
	if uc.provider == nil {
		uc.logger.Error("HandleWebhook: payment provider not configured")
		return ErrProviderNotConfigured
	}

	event, err := uc.provider.ParseWebhook(req.Payload, req.Signature)
	if err != nil {
		uc.logger.Warn("HandleWebhook: rejected event: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	if event.Type != domain.EventCheckoutCompleted {
		uc.logger.Info("HandleWebhook: skip event type=%s", event.Type)
		return nil
	}

	tx, err := uc.paymentRepo.GetBySessionID(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrTransactionNotFound) {
			uc.logger.Warn("HandleWebhook: session=%s not found, skip", event.SessionID)
			return nil
		}
		uc.logger.Error("HandleWebhook: failed to get transaction session=%s: %v", event.SessionID, err)
		return fmt.Errorf("%w: failed to get transaction: %v", ErrInternal, err)
	}

	return uc.settle(ctx, tx, domain.TransactionComplete, event.PaymentStatus)
}

// settle сохраняет состояние сессии и при первой успешной оплате подтверждает бронирование
func (uc *UseCase) settle(ctx context.Context, tx *domain.PaymentTransaction, status domain.TransactionStatus, paymentStatus domain.PaymentStatus) error {
	now := uc.timeProvider.Now()
	confirmed := false

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		if err := uc.paymentRepo.UpdateStatus(ctx, tx.SessionID, status, paymentStatus, now); err != nil {
			return err
		}

		if paymentStatus != domain.PaymentPaid {
			return nil
		}

		changed, err := uc.bookingRepo.MarkPaid(ctx, tx.BookingID, now)
		if err != nil {
			return err
		}
		confirmed = changed
		return nil
	})
	if err != nil {
		uc.logger.Error("settle: failed to save status for session=%s: %v", tx.SessionID, err)
		return fmt.Errorf("%w: failed to save payment status: %v", ErrInternal, err)
	}

	if confirmed {
		uc.logger.Info("settle: booking=%s confirmed by session=%s", tx.BookingID, tx.SessionID)
		uc.metrics.IncPaymentResolved(string(domain.PaymentPaid))
	} else if status == domain.TransactionExpired && tx.Status != domain.TransactionExpired {
		uc.logger.Info("settle: session=%s expired", tx.SessionID)
		uc.metrics.IncPaymentResolved(string(status))
	}

	return nil
}
