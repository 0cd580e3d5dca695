package domain

import (
	"math"
	"time"
)

// TransactionStatus статус checkout-сессии у платёжного провайдера
type TransactionStatus string

const (
	TransactionInitiated TransactionStatus = "initiated"
	TransactionOpen      TransactionStatus = "open"
	TransactionComplete  TransactionStatus = "complete"
	TransactionExpired   TransactionStatus = "expired"
)

// PaymentTransaction запись о checkout-сессии бронирования
type PaymentTransaction struct {
	ID            string
	SessionID     string
	BookingID     string
	Amount        float64
	Currency      string
	PaymentStatus PaymentStatus
	Status        TransactionStatus
	CustomerEmail string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentSession сессия оплаты, созданная провайдером
type PaymentSession struct {
	SessionID string
	URL       string
}

// CheckoutStatus состояние сессии, полученное от провайдера
type CheckoutStatus struct {
	SessionID     string
	Status        TransactionStatus
	PaymentStatus PaymentStatus
	AmountTotal   int64 // в минимальных единицах валюты
	Currency      string
}

// CheckoutRequest параметры создания checkout-сессии у провайдера
type CheckoutRequest struct {
	BookingID     string
	Amount        float64 // в долларах
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// WebhookEvent событие, пришедшее от провайдера
type WebhookEvent struct {
	Type          string
	SessionID     string
	PaymentStatus PaymentStatus
}

// EventCheckoutCompleted тип события завершения checkout-сессии
const EventCheckoutCompleted = "checkout.session.completed"

// AmountToMinorUnits переводит сумму в центы
func AmountToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
