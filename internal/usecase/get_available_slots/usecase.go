package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(logger Logger) *UseCase {
	return &UseCase{
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Нерабочий день
	if req.Date.Weekday() == domain.ExcludedWeekday {
		uc.logger.Info("GetAvailableSlots: no bookings on %s", req.Date.Weekday())
		return &Response{
			Date:  req.Date,
			Open:  false,
			Slots: []Slot{},
		}, nil
	}

	// 4. Генерируем слоты
	slots, err := generateTimeSlots(req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots available on %s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Open:  true,
		Slots: slots,
	}, nil
}
