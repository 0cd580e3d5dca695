package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound ресурс не найден (404)
	ErrNotFound = errors.New("backend client: not found")

	// ErrUnauthorized токен отсутствует, истёк или отозван (401)
	ErrUnauthorized = errors.New("backend client: unauthorized")

	// ErrConflict конфликт состояния, например повторная оплата (409)
	ErrConflict = errors.New("backend client: conflict")

	// ErrInvalidResponse ответ сервера не удалось разобрать
	ErrInvalidResponse = errors.New("backend client: invalid response")

	// ErrInternal ошибка на стороне клиента: построение запроса, сеть
	ErrInternal = errors.New("backend client: internal error")
)

// APIError ответ сервера с кодом ошибки и текстом из поля detail
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: status %d: %s", e.StatusCode, e.Detail)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrNotFound) и т.п.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	default:
		return nil
	}
}

// Detail текст, который можно показать пользователю
// Для ответов сервера это поле detail, для остальных ошибок - текст ошибки
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
