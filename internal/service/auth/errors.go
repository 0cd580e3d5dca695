package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных регистрации или входа
	ErrInvalidInput = errors.New("auth.service: invalid input data")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("auth.service: email already registered")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("auth.service: invalid email or password")

	// ErrInactiveUser возвращается, когда учётная запись отключена
	ErrInactiveUser = errors.New("auth.service: account is disabled")

	// ErrInvalidToken возвращается при неверном или просроченном токене
	ErrInvalidToken = errors.New("auth.service: invalid token")

	// ErrUserNotFound возвращается, когда пользователь из токена не найден
	ErrUserNotFound = errors.New("auth.service: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth.service: internal error")
)
