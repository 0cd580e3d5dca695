package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/infra/idempotency"
	bookingRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/booking"
	cleanerRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/cleaner"
	"github.com/m04kA/SMC-CleaningBooking/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	cleanerRepo  CleanerRepository
	idempotency  IdempotencyStore
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	cleanerRepo CleanerRepository,
	idempotency IdempotencyStore,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cleanerRepo:  cleanerRepo,
		idempotency:  idempotency,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Повтор запроса с тем же RequestToken возвращает уже созданное бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, cleaner=%s, date=%s, time=%s, hours=%d, location=%s",
		req.ServiceType, req.CleanerID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.Hours, req.Location)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты и времени
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.TimeSlot, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Услуга и город
	pkg, ok := domain.FindServicePackage(req.ServiceType)
	if !ok {
		uc.logger.Warn("CreateBooking: unknown service type=%s", req.ServiceType)
		return nil, ErrInvalidServiceType
	}
	if !domain.IsServiceArea(req.Location) {
		uc.logger.Warn("CreateBooking: unsupported service area=%s", req.Location)
		return nil, ErrServiceAreaNotSupported
	}

	// 4. Резервируем Idempotency-Key
	existingID, acquired, err := uc.idempotency.Reserve(ctx, req.RequestToken)
	if err != nil {
		if errors.Is(err, idempotency.ErrInProgress) {
			uc.logger.Warn("CreateBooking: request token=%s is in progress", req.RequestToken)
			return nil, ErrRequestInProgress
		}
		return nil, fmt.Errorf("%w: reserve request token: %v", ErrInternal, err)
	}
	if !acquired {
		return uc.replay(ctx, existingID)
	}

	created := false
	defer func() {
		if !created {
			uc.idempotency.Release(ctx, req.RequestToken)
		}
	}()

	// 5. Исполнитель
	cleaner, err := uc.cleanerRepo.GetByID(ctx, req.CleanerID)
	if err != nil {
		if errors.Is(err, cleanerRepo.ErrCleanerNotFound) {
			uc.logger.Warn("CreateBooking: cleaner id=%s not found", req.CleanerID)
			return nil, ErrCleanerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get cleaner id=%s: %v", req.CleanerID, err)
		return nil, fmt.Errorf("%w: failed to get cleaner: %v", ErrInternal, err)
	}

	// 6. Создаем бронирование с денормализацией имени исполнителя
	booking := &domain.Booking{
		ID:                  uuid.NewString(),
		ServiceType:         pkg.Kind.Key(),
		CleanerID:           cleaner.ID,
		CleanerName:         cleaner.Name,
		Date:                req.Date,
		TimeSlot:            req.TimeSlot,
		Hours:               req.Hours,
		Location:            req.Location,
		Address:             req.Address,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		SpecialInstructions: req.SpecialInstructions,
		TotalAmount:         pkg.BasePrice * float64(req.Hours),
		Status:              domain.StatusPendingPayment,
		PaymentStatus:       domain.PaymentPending,
		CustomerUserID:      req.CustomerUserID,
	}
	if req.RequestToken != "" {
		booking.RequestToken = ptr.Ptr(req.RequestToken)
	}

	result, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateRequestToken) {
			// Redis недоступен или ключ истёк, но бронирование уже есть в БД
			existing, getErr := uc.bookingRepo.GetByRequestToken(ctx, req.RequestToken)
			if getErr != nil {
				uc.logger.Error("CreateBooking: failed to load booking by token=%s: %v", req.RequestToken, getErr)
				return nil, fmt.Errorf("%w: failed to load existing booking: %v", ErrInternal, getErr)
			}
			created = true
			return &Response{BookingID: existing.ID, TotalAmount: existing.TotalAmount, Replayed: true}, nil
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
	created = true

	if err := uc.idempotency.Complete(ctx, req.RequestToken, result.ID); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
	}
	uc.metrics.IncBookingCreated(result.ServiceType)

	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%.2f", result.ID, result.TotalAmount)

	return &Response{
		BookingID:   result.ID,
		TotalAmount: result.TotalAmount,
	}, nil
}

func (uc *UseCase) replay(ctx context.Context, bookingID string) (*Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load replayed booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to load existing booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: replayed booking id=%s", booking.ID)
	return &Response{BookingID: booking.ID, TotalAmount: booking.TotalAmount, Replayed: true}, nil
}
