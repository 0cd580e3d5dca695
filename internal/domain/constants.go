package domain

import "time"

// Ограничения бронирования
const (
	MinHours     = 1
	MaxHours     = 8
	DefaultHours = 2

	// ExcludedWeekday день, в который уборки не проводятся
	ExcludedWeekday = time.Sunday

	MaxInstructionsLength = 1000
)

// Ограничения учётных записей
const (
	MinPasswordLength = 8
	MinNameLength     = 2
)

// Форматы дат
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultCurrency валюта оплаты
const DefaultCurrency = "usd"

// ServiceAreas города, в которых принимаются заказы
var ServiceAreas = []string{
	"Tempe", "Chandler", "Gilbert", "Mesa",
	"Phoenix", "Glendale", "Scottsdale", "Avondale",
}

// IsServiceArea проверяет, что город обслуживается
func IsServiceArea(area string) bool {
	for _, a := range ServiceAreas {
		if a == area {
			return true
		}
	}
	return false
}

// IsBookableDate дата не в прошлом относительно now и не выпадает на выходной
func IsBookableDate(date, now time.Time) bool {
	if date.IsZero() {
		return false
	}
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(nowOnly) {
		return false
	}
	return date.Weekday() != ExcludedWeekday
}
