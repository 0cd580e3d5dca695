package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Ссылка с id бронирования выдаётся только его автору (в return URL), поэтому авторизация не требуется
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	if req.UserID == "" && req.Email == "" {
		return nil, fmt.Errorf("%w: user id or email is required", ErrInvalidInput)
	}

	filter := domain.BookingsFilter{
		CustomerUserID: req.UserID,
		CustomerEmail:  strings.ToLower(req.Email),
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет неоплаченное бронирование клиента
// Клиент - владелец бронирования или тот, на чей email оно оформлено
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking_id=%s, user=%s", req.BookingID, req.UserID)

	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
	}

	if !isOwner(booking, req) {
		s.logger.Warn("Cancel: user=%s is not the owner of booking id=%s", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if booking.IsPaid() || booking.Status != domain.StatusPendingPayment {
		s.logger.Warn("Cancel: booking id=%s has status=%s, payment=%s", req.BookingID, booking.Status, booking.PaymentStatus)
		return nil, ErrCannotCancel
	}

	changed, err := s.bookingRepo.Cancel(ctx, req.BookingID)
	if err != nil {
		s.logger.Error("Cancel: repository error for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - update booking: %v", ErrInternal, err)
	}
	// Оплата могла пройти между чтением и обновлением
	if !changed {
		s.logger.Warn("Cancel: booking id=%s changed concurrently", req.BookingID)
		return nil, ErrCannotCancel
	}

	booking.Status = domain.StatusCancelled
	s.logger.Info("Cancel: booking id=%s cancelled", req.BookingID)
	return models.FromDomainBooking(booking), nil
}

func isOwner(booking *domain.Booking, req *models.CancelBookingRequest) bool {
	if booking.CustomerUserID != nil && req.UserID != "" && *booking.CustomerUserID == req.UserID {
		return true
	}
	return req.Email != "" && strings.EqualFold(booking.CustomerEmail, req.Email)
}
