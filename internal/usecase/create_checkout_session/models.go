package create_checkout_session

// Request модель запроса на создание checkout-сессии
type Request struct {
	BookingID string
	OriginURL string // адрес приложения, куда провайдер вернёт клиента
}

// Response модель ответа с адресом страницы оплаты
type Response struct {
	URL       string
	SessionID string
}
