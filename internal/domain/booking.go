package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
)

// PaymentStatus статус оплаты, общий для бронирования и транзакции
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentPaid              PaymentStatus = "paid"
	PaymentUnpaid            PaymentStatus = "unpaid"
	PaymentNoPaymentRequired PaymentStatus = "no_payment_required"
)

// Booking бронирование уборки
type Booking struct {
	ID          string
	ServiceType string
	CleanerID   string
	CleanerName string
	Date        time.Time
	TimeSlot    string
	Hours       int
	Location    string
	Address     string

	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	SpecialInstructions string

	TotalAmount   float64
	Status        BookingStatus
	PaymentStatus PaymentStatus

	CustomerUserID *string // владелец, если бронирование сделано авторизованным клиентом
	RequestToken   *string // Idempotency-Key запроса на создание

	CreatedAt   time.Time
	ConfirmedAt *time.Time
}

// IsPaid true, если бронирование уже оплачено
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// BookingsFilter фильтр списка бронирований клиента
type BookingsFilter struct {
	CustomerUserID string
	CustomerEmail  string
	Status         *BookingStatus
}
