package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	required := []struct {
		name  string
		value string
	}{
		{"service_type", req.ServiceType},
		{"cleaner_id", req.CleanerID},
		{"time", req.TimeSlot},
		{"location", req.Location},
		{"address", req.Address},
		{"customer_name", req.CustomerName},
		{"customer_email", req.CustomerEmail},
		{"customer_phone", req.CustomerPhone},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field.name)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customer_email is invalid", ErrInvalidInput)
	}

	if len(req.SpecialInstructions) > domain.MaxInstructionsLength {
		return fmt.Errorf("%w: special_instructions must be at most %d characters",
			ErrInvalidInput, domain.MaxInstructionsLength)
	}

	if req.Hours < domain.MinHours || req.Hours > domain.MaxHours {
		return fmt.Errorf("%w: hours must be between %d and %d", ErrInvalidHours, domain.MinHours, domain.MaxHours)
	}

	if !domain.IsTimeSlot(req.TimeSlot) {
		return ErrInvalidTimeSlot
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не выпадает на нерабочий день
func validateDate(bookingDate, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	if bookingDate.Weekday() == domain.ExcludedWeekday {
		return ErrExcludedWeekday
	}

	return nil
}

// validateBookingTime проверяет, что слот на сегодня ещё не начался
func validateBookingTime(bookingDate time.Time, timeSlot string, now time.Time) error {
	started, err := domain.SlotStarted(bookingDate, timeSlot, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	if started {
		return ErrTooLateToBook
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
