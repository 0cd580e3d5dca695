package wizard

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// CustomerInfo контактные данные клиента
type CustomerInfo struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Instructions string
}

// complete заполнены все четыре обязательных поля
func (c CustomerInfo) complete() bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.Phone) != "" &&
		strings.TrimSpace(c.Address) != ""
}

// Draft черновик бронирования, живёт только на клиенте до отправки
type Draft struct {
	ServiceKey string
	CleanerID  string
	Date       time.Time
	TimeSlot   string
	Hours      int
	Area       string
	Customer   CustomerInfo

	// RequestToken уходит в заголовке Idempotency-Key; меняется при любой правке черновика
	RequestToken string
}

func (d Draft) toRequest() backend.CreateBookingRequest {
	return backend.CreateBookingRequest{
		ServiceType:         d.ServiceKey,
		CleanerID:           d.CleanerID,
		Date:                d.Date.Format(domain.DateFormat),
		Time:                d.TimeSlot,
		Hours:               d.Hours,
		Location:            d.Area,
		Address:             strings.TrimSpace(d.Customer.Address),
		CustomerName:        strings.TrimSpace(d.Customer.Name),
		CustomerEmail:       strings.TrimSpace(d.Customer.Email),
		CustomerPhone:       strings.TrimSpace(d.Customer.Phone),
		SpecialInstructions: strings.TrimSpace(d.Customer.Instructions),
	}
}

// sameDate сравнение дат без учёта времени
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ChecklistItem пункт списка готовности к оплате
type ChecklistItem struct {
	Label string
	Done  bool
}
