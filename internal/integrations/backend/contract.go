package backend

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TokenSource источник bearer-токена текущей сессии
// Пустая строка означает, что пользователь не вошёл
type TokenSource interface {
	Token() string
}
