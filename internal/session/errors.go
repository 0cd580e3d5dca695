package session

import "errors"

var (
	// ErrInvalidInput пустые email или пароль
	ErrInvalidInput = errors.New("session: invalid input")

	// ErrStore не удалось прочитать или записать сохранённый токен
	ErrStore = errors.New("session: token store failure")
)
