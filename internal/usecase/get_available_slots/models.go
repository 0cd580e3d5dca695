package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Slot модель временного слота
type Slot struct {
	Label     string    // "10:00 AM"
	StartTime time.Time // Начало слота в часовом поясе сервиса
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date  time.Time
	Open  bool // false, если в этот день заказы не принимаются
	Slots []Slot
}
