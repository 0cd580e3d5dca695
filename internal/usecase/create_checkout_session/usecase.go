package create_checkout_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/booking"
)

// UseCase use case для создания checkout-сессии оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	provider     PaymentProvider
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// provider == nil означает, что оплата не настроена
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	provider PaymentProvider,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		provider:     provider,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания checkout-сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckoutSession: booking=%s, origin=%s", req.BookingID, req.OriginURL)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckoutSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateCheckoutSession: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreateCheckoutSession: failed to get booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.IsPaid() {
		uc.logger.Warn("CreateCheckoutSession: booking id=%s already paid", booking.ID)
		return nil, ErrAlreadyPaid
	}

	if booking.Status == domain.StatusCancelled {
		uc.logger.Warn("CreateCheckoutSession: booking id=%s cancelled", booking.ID)
		return nil, ErrBookingCancelled
	}

	// 3. Провайдер
	if uc.provider == nil {
		uc.logger.Error("CreateCheckoutSession: payment provider not configured")
		return nil, ErrProviderNotConfigured
	}

	successURL, cancelURL := returnURLs(req.OriginURL, booking.ID)

	session, err := uc.provider.CreateCheckoutSession(ctx, domain.CheckoutRequest{
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		Currency:      uc.currency,
		ProductName:   productName(booking),
		CustomerEmail: booking.CustomerEmail,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		Metadata: map[string]string{
			"booking_id":     booking.ID,
			"customer_email": booking.CustomerEmail,
			"service_type":   booking.ServiceType,
		},
	})
	if err != nil {
		uc.logger.Error("CreateCheckoutSession: provider failed for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	// 4. Запись о транзакции
	now := uc.timeProvider.Now()
	tx := &domain.PaymentTransaction{
		ID:            uuid.NewString(),
		SessionID:     session.SessionID,
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		Currency:      uc.currency,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.TransactionInitiated,
		CustomerEmail: booking.CustomerEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.paymentRepo.Create(ctx, tx); err != nil {
		uc.logger.Error("CreateCheckoutSession: failed to save transaction session=%s: %v", session.SessionID, err)
		return nil, fmt.Errorf("%w: failed to save transaction: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateCheckoutSession: session=%s created for booking=%s", session.SessionID, booking.ID)

	return &Response{
		URL:       session.URL,
		SessionID: session.SessionID,
	}, nil
}

func productName(b *domain.Booking) string {
	name := b.ServiceType
	if pkg, ok := domain.FindServicePackage(b.ServiceType); ok {
		name = pkg.Name
	}
	return fmt.Sprintf("%s - %dh with %s", name, b.Hours, b.CleanerName)
}
