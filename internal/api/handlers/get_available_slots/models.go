package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string   `json:"date"`
	Available bool     `json:"available"`
	TimeSlots []string `json:"time_slots"`
}

// ToUseCaseRequest формирует запрос use case из строки даты
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.Label)
	}
	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Open,
		TimeSlots: slots,
	}
}
