package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeSlots начала часовых слотов в формате, который показывает клиент
var TimeSlots = []string{
	"8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
}

const timeSlotLayout = "3:04 PM"

// IsTimeSlot проверяет, что слот входит в расписание
func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseTimeSlot возвращает время начала слота на указанную дату
func ParseTimeSlot(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(timeSlotLayout, strings.TrimSpace(slot))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// SlotStarted true, если слот на сегодняшнюю дату уже начался
// Для других дат слот не разбирается и считается не начавшимся
func SlotStarted(date time.Time, slot string, now time.Time) (bool, error) {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false, nil
	}

	start, err := ParseTimeSlot(time.Date(y1, m1, d1, 0, 0, 0, 0, now.Location()), slot)
	if err != nil {
		return false, err
	}
	return !start.After(now), nil
}

// AvailableSlot слот, доступный для бронирования на дату
type AvailableSlot struct {
	Label     string
	StartTime time.Time
}
