package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ServiceType         string
	CleanerID           string
	Date                time.Time // Дата бронирования (без времени)
	TimeSlot            string    // Например, "10:00 AM"
	Hours               int
	Location            string // Город из списка обслуживаемых
	Address             string
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	SpecialInstructions string

	CustomerUserID *string // ID авторизованного клиента (опционально)
	RequestToken   string  // Idempotency-Key (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID   string
	TotalAmount float64
	// Replayed true, если бронирование уже было создано ранее с тем же Idempotency-Key
	Replayed bool
}
