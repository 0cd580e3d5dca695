package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
// Бронирования ищутся по владельцу и по email, на который они были оформлены без входа
type GetCustomerBookingsRequest struct {
	UserID string
	Email  string
	Status *string
}

// CancelBookingRequest запрос клиента на отмену бронирования
type CancelBookingRequest struct {
	BookingID string
	UserID    string
	Email     string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                  string  `json:"id"`
	ServiceType         string  `json:"service_type"`
	CleanerID           string  `json:"cleaner_id"`
	CleanerName         string  `json:"cleaner_name"`
	Date                string  `json:"date"` // "2025-10-15"
	Time                string  `json:"time"` // "10:00 AM"
	Hours               int     `json:"hours"`
	Location            string  `json:"location"`
	Address             string  `json:"address"`
	CustomerName        string  `json:"customer_name"`
	CustomerEmail       string  `json:"customer_email"`
	CustomerPhone       string  `json:"customer_phone"`
	SpecialInstructions string  `json:"special_instructions"`
	TotalAmount         float64 `json:"total_amount"`
	Status              string  `json:"status"`
	PaymentStatus       string  `json:"payment_status"`

	CreatedAt   time.Time `json:"created_at"`
	ConfirmedAt *string   `json:"confirmed_at,omitempty"` // ISO 8601 format
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		ServiceType:         b.ServiceType,
		CleanerID:           b.CleanerID,
		CleanerName:         b.CleanerName,
		Date:                b.Date.Format(domain.DateFormat),
		Time:                b.TimeSlot,
		Hours:               b.Hours,
		Location:            b.Location,
		Address:             b.Address,
		CustomerName:        b.CustomerName,
		CustomerEmail:       b.CustomerEmail,
		CustomerPhone:       b.CustomerPhone,
		SpecialInstructions: b.SpecialInstructions,
		TotalAmount:         b.TotalAmount,
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		CreatedAt:           b.CreatedAt,
	}

	if b.ConfirmedAt != nil {
		confirmedStr := b.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPendingPayment,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
