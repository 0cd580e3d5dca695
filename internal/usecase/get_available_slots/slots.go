package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// generateTimeSlots строит слоты дня по фиксированному расписанию
// Для сегодняшней даты отбрасываются слоты, которые уже начались
func generateTimeSlots(date, now time.Time) ([]Slot, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := isSameDay(date, now)

	slots := make([]Slot, 0, len(domain.TimeSlots))
	for _, label := range domain.TimeSlots {
		start, err := domain.ParseTimeSlot(day, label)
		if err != nil {
			return nil, err
		}

		if today && !start.After(now) {
			continue
		}

		slots = append(slots, Slot{Label: label, StartTime: start})
	}

	return slots, nil
}
