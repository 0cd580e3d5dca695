package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_booking"
)

const msgBookingCreated = "Booking created successfully"

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceType         string `json:"service_type"`
	CleanerID           string `json:"cleaner_id"`
	Date                string `json:"date"` // "2025-10-15"
	Time                string `json:"time"` // "10:00 AM"
	Hours               int    `json:"hours"`
	Location            string `json:"location"`
	Address             string `json:"address"`
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhone       string `json:"customer_phone"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingID   string  `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	Message     string  `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID *string, requestToken string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceType:         r.ServiceType,
		CleanerID:           r.CleanerID,
		Date:                date,
		TimeSlot:            r.Time,
		Hours:               r.Hours,
		Location:            r.Location,
		Address:             r.Address,
		CustomerName:        r.CustomerName,
		CustomerEmail:       r.CustomerEmail,
		CustomerPhone:       r.CustomerPhone,
		SpecialInstructions: r.SpecialInstructions,
		CustomerUserID:      userID,
		RequestToken:        requestToken,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:   resp.BookingID,
		TotalAmount: resp.TotalAmount,
		Message:     msgBookingCreated,
	}
}
